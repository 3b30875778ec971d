// Package filters builds analytics filter requests and splits long value lists into batches.
//
// Key components:
//   - Batches: Lazily groups values into "|"-joined expressions of at most MaxExpressionLength characters.
//   - BuildFilters: Drives a creation function once per batch, pacing between calls.
//   - Request constructors: One per filter kind, validated at construction.
//   - Dispatch: Maps a batchable kind to its request constructor.
//   - MatchName, FindByName: Select filters from a listing by name.
//
// Usage example:
//
//	created, err := filters.BuildFilters(ctx, ips, "Office IPs", create, pacer.Wait)
//	if err != nil {
//	    logrus.WithError(err).WithField("created", len(created)).Error("Batch aborted")
//	}
//
// Batching never fails on its own; errors only come from the creation and pacing functions.
package filters
