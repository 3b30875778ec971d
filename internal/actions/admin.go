package actions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/gafilter/pkg/filters"
	"github.com/nicholas-fedor/gafilter/pkg/metrics"
	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// Notification titles.
const (
	titleCreated      = "Created Filter"
	titleRemoved      = "Removed Filter"
	titleQueryParams  = "Added Exclude Query Params"
	queryParamMessage = ""
)

// Admin runs filter operations for one analytics account, property and view.
type Admin struct {
	client   types.Client
	settings types.Settings
	notifier types.Notifier
	pacer    Pacer
	metrics  *metrics.Metrics
}

// NewAdmin creates an Admin.
//
// Parameters:
//   - client: Management API client.
//   - settings: Account, property, view and site the operations apply to.
//   - notifier: Sink for change notifications; nil disables notifications.
//   - pacer: Cooldown between remote writes; nil disables pacing.
//   - m: Metrics handler; nil disables counting.
//
// Returns:
//   - *Admin: Configured admin service.
func NewAdmin(
	client types.Client,
	settings types.Settings,
	notifier types.Notifier,
	pacer Pacer,
	m *metrics.Metrics,
) *Admin {
	return &Admin{
		client:   client,
		settings: settings,
		notifier: notifier,
		pacer:    pacer,
		metrics:  m,
	}
}

// Settings returns the account, property and view the admin operates on.
func (a *Admin) Settings() types.Settings {
	return a.settings
}

// CreateFilter inserts a filter and links it to the configured view.
//
// A filter that was inserted but could not be linked stays in the account.
//
// Parameters:
//   - ctx: Context for the remote calls.
//   - req: Validated filter request.
//
// Returns:
//   - *types.Filter: Created filter.
//   - error: *types.RemoteAPIError with Op "insert" or "link" on failure.
func (a *Admin) CreateFilter(ctx context.Context, req types.Request) (*types.Filter, error) {
	fields := logrus.Fields{
		"name": req.Name,
		"kind": req.Kind.String(),
		"type": req.Type,
	}

	filter, err := a.client.InsertFilter(ctx, a.settings.AccountID, req)
	if err != nil {
		err = remoteError("insert", err)
		a.metrics.RemoteError(err)
		logrus.WithFields(fields).
			WithField("expression", req.Expression).
			WithError(err).
			Error("Failed to create filter")

		return nil, err
	}

	if err := a.client.LinkFilter(ctx, a.settings, filter.ID); err != nil {
		err = remoteError("link", err)
		a.metrics.RemoteError(err)
		logrus.WithFields(fields).
			WithField("filter_id", filter.ID).
			WithError(err).
			Error("Failed to link filter to view")

		return nil, err
	}

	a.metrics.FilterCreated(req.Kind)
	a.notify(req.Name, titleCreated)

	logrus.WithFields(fields).WithField("filter_id", filter.ID).Info("Created filter")

	return filter, nil
}

// CreateHostnameFilter creates an include filter for the configured site.
func (a *Admin) CreateHostnameFilter(ctx context.Context, name string) (*types.Filter, error) {
	req, err := filters.NewHostnameInclude(name, a.settings.Site)
	if err != nil {
		return nil, err
	}

	return a.CreateFilter(ctx, req)
}

// CreateExcludeFilter creates one exclude filter of a batch kind from a ready expression.
//
// Parameters:
//   - ctx: Context for the remote calls.
//   - kind: One of the kinds accepted by filters.Dispatch.
//   - name: Filter name.
//   - expression: Expression value, at most filters.MaxExpressionLength characters.
//
// Returns:
//   - *types.Filter: Created filter.
//   - error: *types.ConfigurationError for other kinds, validation or remote errors otherwise.
func (a *Admin) CreateExcludeFilter(
	ctx context.Context,
	kind types.Kind,
	name, expression string,
) (*types.Filter, error) {
	constructor, err := filters.Dispatch(kind)
	if err != nil {
		return nil, err
	}

	req, err := constructor(name, expression)
	if err != nil {
		return nil, err
	}

	return a.CreateFilter(ctx, req)
}

// CreateLowercaseFilter creates a filter that lowercases field.
func (a *Admin) CreateLowercaseFilter(ctx context.Context, name, field string) (*types.Filter, error) {
	req, err := filters.NewLowercase(name, field)
	if err != nil {
		return nil, err
	}

	return a.CreateFilter(ctx, req)
}

// CreateCustomExcludeFilter creates an exclude filter on an arbitrary field.
func (a *Admin) CreateCustomExcludeFilter(
	ctx context.Context,
	name, field, expression string,
) (*types.Filter, error) {
	req, err := filters.NewCustomExclude(name, field, expression)
	if err != nil {
		return nil, err
	}

	return a.CreateFilter(ctx, req)
}

// CreateAdvancedFilter creates a field extraction filter.
func (a *Admin) CreateAdvancedFilter(
	ctx context.Context,
	name string,
	details types.AdvancedDetails,
) (*types.Filter, error) {
	req, err := filters.NewAdvanced(name, details)
	if err != nil {
		return nil, err
	}

	return a.CreateFilter(ctx, req)
}

// CreateFiltersForList creates as many filters as needed to cover values.
//
// Filters are named "<name> 01", "<name> 02" and so on. The kind is checked before any remote
// call. The first failure stops the run; filters created before it are kept and returned.
//
// Parameters:
//   - ctx: Context for the remote calls and the cooldown.
//   - values: Raw values; empty entries are skipped.
//   - name: Filter name prefix.
//   - kind: Campaign source, IP address or ISP organization.
//
// Returns:
//   - []*types.Filter: Filters created, in batch order.
//   - error: *types.ConfigurationError, validation or remote error, nil on success.
func (a *Admin) CreateFiltersForList(
	ctx context.Context,
	values []string,
	name string,
	kind types.Kind,
) ([]*types.Filter, error) {
	constructor, err := filters.Dispatch(kind)
	if err != nil {
		logrus.WithField("kind", kind.String()).WithError(err).Error("Cannot create filters from a list")

		return nil, err
	}

	create := func(ctx context.Context, batchName, expression string) (*types.Filter, error) {
		a.metrics.BatchProduced(kind)

		req, err := constructor(batchName, expression)
		if err != nil {
			logrus.WithField("name", batchName).WithError(err).Error("Rejected batch")

			return nil, err
		}

		return a.CreateFilter(ctx, req)
	}

	created, err := filters.BuildFilters(ctx, values, name, create, a.pace)

	logrus.WithFields(logrus.Fields{
		"prefix":  name,
		"kind":    kind.String(),
		"values":  len(values),
		"created": len(created),
	}).Debug("Finished batch creation")

	return created, err
}

// DeleteFilters removes every filter whose name contains fragment.
//
// Removals are paced like creations. The first failure stops the run.
//
// Parameters:
//   - ctx: Context for the remote calls and the cooldown.
//   - fragment: Name substring; an empty fragment matches every filter.
//
// Returns:
//   - []*types.Filter: Filters removed.
//   - error: Remote or cooldown error, nil on success.
func (a *Admin) DeleteFilters(ctx context.Context, fragment string) ([]*types.Filter, error) {
	matches, err := a.GetMatchingFilters(ctx, fragment)
	if err != nil {
		return nil, err
	}

	removed := make([]*types.Filter, 0, len(matches))

	for i, filter := range matches {
		if i > 0 {
			if err := a.pace(ctx); err != nil {
				return removed, err
			}
		}

		if err := a.client.RemoveFilter(ctx, a.settings.AccountID, filter.ID); err != nil {
			err = remoteError("remove", err)
			a.metrics.RemoteError(err)
			logrus.WithFields(logrus.Fields{
				"name":      filter.Name,
				"filter_id": filter.ID,
			}).WithError(err).Error("Failed to remove filter")

			return removed, err
		}

		a.metrics.FilterRemoved()
		a.notify(filter.Name, titleRemoved)
		logrus.WithField("name", filter.Name).Info("Removed filter")

		removed = append(removed, filter)
	}

	return removed, nil
}

// GetFilter returns the filter with exactly the given name, or nil when there is none.
func (a *Admin) GetFilter(ctx context.Context, name string) (*types.Filter, error) {
	all, err := a.listFilters(ctx)
	if err != nil {
		return nil, err
	}

	return filters.FindByName(all, name), nil
}

// GetMatchingFilters returns the filters whose name contains fragment, in listing order.
func (a *Admin) GetMatchingFilters(ctx context.Context, fragment string) ([]*types.Filter, error) {
	all, err := a.listFilters(ctx)
	if err != nil {
		return nil, err
	}

	return filters.MatchName(all, fragment), nil
}

func (a *Admin) listFilters(ctx context.Context) ([]*types.Filter, error) {
	all, err := a.client.ListFilters(ctx, a.settings.AccountID)
	if err != nil {
		err = remoteError("list", err)
		a.metrics.RemoteError(err)
		logrus.WithField("account", a.settings.AccountID).WithError(err).Error("Failed to list filters")

		return nil, err
	}

	return all, nil
}

// pace waits for the cooldown when a pacer is configured.
func (a *Admin) pace(ctx context.Context) error {
	if a.pacer == nil {
		return nil
	}

	return a.pacer.Wait(ctx)
}

// notify sends a notification when a notifier is configured.
func (a *Admin) notify(message, title string) {
	if a.notifier == nil {
		logrus.Trace("Notifier is nil, skipping notification")

		return
	}

	a.notifier.Notify(message, title)
}
