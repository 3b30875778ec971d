// Package mocks provides mock implementations for testing gafilter components.
package mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// ErrMockFailure is returned by MockClient operations configured to fail.
var ErrMockFailure = errors.New("mock remote failure")

// Call records one MockClient invocation.
type Call struct {
	Op       string // insert, link, remove, list, get-profile or update-profile.
	FilterID string
	Request  types.Request
}

// TestData holds the remote state and scripted failures of a MockClient.
type TestData struct {
	Filters []*types.Filter // Filters held by the account, in listing order.
	Profile *types.Profile  // Reporting view returned by GetProfile.

	FailInsertAt int      // 1-based insert call that fails; 0 never fails.
	FailOps      []string // Operations that always fail.

	Calls  []Call
	nextID int
}

// Count returns how many times op was called.
func (testdata *TestData) Count(op string) int {
	count := 0

	for _, call := range testdata.Calls {
		if call.Op == op {
			count++
		}
	}

	return count
}

// Ops returns the operation names in call order.
func (testdata *TestData) Ops() []string {
	ops := make([]string, 0, len(testdata.Calls))
	for _, call := range testdata.Calls {
		ops = append(ops, call.Op)
	}

	return ops
}

// MockClient is a mock implementation of types.Client backed by TestData.
type MockClient struct {
	TestData *TestData
}

// CreateMockClient constructs a new MockClient for the given test data.
func CreateMockClient(data *TestData) *MockClient {
	return &MockClient{TestData: data}
}

func (client *MockClient) fails(op string) error {
	for _, failing := range client.TestData.FailOps {
		if failing == op {
			return fmt.Errorf("%w: %s", ErrMockFailure, op)
		}
	}

	return nil
}

// InsertFilter stores a filter built from req and assigns it a sequential ID.
func (client *MockClient) InsertFilter(_ context.Context, accountID string, req types.Request) (*types.Filter, error) {
	client.TestData.Calls = append(client.TestData.Calls, Call{Op: "insert", Request: req})

	if client.TestData.FailInsertAt > 0 && client.TestData.Count("insert") == client.TestData.FailInsertAt {
		return nil, fmt.Errorf("%w: insert %s", ErrMockFailure, req.Name)
	}

	if err := client.fails("insert"); err != nil {
		return nil, err
	}

	client.TestData.nextID++
	filter := &types.Filter{
		ID:         strconv.Itoa(client.TestData.nextID),
		AccountID:  accountID,
		Name:       req.Name,
		Type:       req.Type,
		Field:      req.Field,
		Expression: req.Expression,
	}
	client.TestData.Filters = append(client.TestData.Filters, filter)

	return filter, nil
}

// RemoveFilter deletes the filter with filterID from TestData.
func (client *MockClient) RemoveFilter(_ context.Context, _, filterID string) error {
	client.TestData.Calls = append(client.TestData.Calls, Call{Op: "remove", FilterID: filterID})

	if err := client.fails("remove"); err != nil {
		return err
	}

	for i, filter := range client.TestData.Filters {
		if filter.ID == filterID {
			client.TestData.Filters = append(client.TestData.Filters[:i], client.TestData.Filters[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("%w: filter %s not found", ErrMockFailure, filterID)
}

// ListFilters returns a copy of the stored filters.
func (client *MockClient) ListFilters(context.Context, string) ([]*types.Filter, error) {
	client.TestData.Calls = append(client.TestData.Calls, Call{Op: "list"})

	if err := client.fails("list"); err != nil {
		return nil, err
	}

	return append([]*types.Filter(nil), client.TestData.Filters...), nil
}

// LinkFilter records the link.
func (client *MockClient) LinkFilter(_ context.Context, _ types.Settings, filterID string) error {
	client.TestData.Calls = append(client.TestData.Calls, Call{Op: "link", FilterID: filterID})

	return client.fails("link")
}

// GetProfile returns a copy of the stored profile.
func (client *MockClient) GetProfile(context.Context, types.Settings) (*types.Profile, error) {
	client.TestData.Calls = append(client.TestData.Calls, Call{Op: "get-profile"})

	if err := client.fails("get-profile"); err != nil {
		return nil, err
	}

	if client.TestData.Profile == nil {
		return nil, nil //nolint:nilnil // mirrors an empty API response
	}

	profile := *client.TestData.Profile

	return &profile, nil
}

// UpdateProfile stores the profile.
func (client *MockClient) UpdateProfile(_ context.Context, _ types.Settings, profile *types.Profile) error {
	client.TestData.Calls = append(client.TestData.Calls, Call{Op: "update-profile"})

	if err := client.fails("update-profile"); err != nil {
		return err
	}

	stored := *profile
	client.TestData.Profile = &stored

	return nil
}
