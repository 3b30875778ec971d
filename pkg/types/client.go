package types

import "context"

// Client defines the management API operations gafilter depends on.
type Client interface {
	// InsertFilter creates a filter under the account and returns the stored record.
	InsertFilter(ctx context.Context, accountID string, req Request) (*Filter, error)

	// RemoveFilter deletes a filter by ID.
	RemoveFilter(ctx context.Context, accountID, filterID string) error

	// ListFilters returns every filter of the account in API order.
	ListFilters(ctx context.Context, accountID string) ([]*Filter, error)

	// LinkFilter attaches an existing filter to a reporting view.
	LinkFilter(ctx context.Context, settings Settings, filterID string) error

	// GetProfile reads the configured reporting view.
	GetProfile(ctx context.Context, settings Settings) (*Profile, error)

	// UpdateProfile writes the reporting view back.
	UpdateProfile(ctx context.Context, settings Settings, profile *Profile) error
}
