// Package actions provides the filter administration operations behind the gafilter commands.
// It creates, links, lists and removes analytics filters and edits the reporting view settings.
//
// Key components:
//   - Admin: Runs filter operations against an injected management client.
//   - CreateFiltersForList: Batches a value list into as many exclude filters as needed.
//   - DeleteFilters: Removes every filter whose name contains a fragment.
//   - AddExcludeQueryParameters: Merges query parameters into the view's exclusion list.
//   - Pacer: Enforces a cooldown between consecutive remote writes.
//
// Usage example:
//
//	admin := actions.NewAdmin(client, settings, notifier, actions.NewPacer(time.Second), metrics.Default())
//	created, err := admin.CreateFiltersForList(ctx, values, "Spam Referrers", types.KindCampaignSourceExclude)
//	if err != nil {
//	    logrus.WithError(err).Error("Batch creation failed")
//	}
//
// The package integrates with filters, metrics, notifications and the types packages,
// using logrus for logging operations and errors.
package actions
