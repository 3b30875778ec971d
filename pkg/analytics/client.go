package analytics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gaapi "google.golang.org/api/analytics/v3"
	"google.golang.org/api/option"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// listPageSize is the page size requested when listing filters.
const listPageSize = 1000

// errReadCredentials indicates the service-account key file could not be read.
var errReadCredentials = errors.New("failed to read credentials file")

// Options configures a Client.
type Options struct {
	CredentialsFile  string       // Service-account JSON key; empty uses application default credentials.
	Endpoint         string       // Overrides the API base URL.
	HTTPClient       *http.Client // Replaces the authenticated transport entirely.
	UserAgent        string
	QueriesPerSecond float64 // Caps the request rate across all calls; zero or less sends unthrottled.
}

// Client talks to the Management API.
type Client struct {
	service *gaapi.Service
}

// NewClient creates a management client.
//
// Parameters:
//   - ctx: Context used while resolving credentials.
//   - opts: Credential and transport options.
//
// Returns:
//   - *Client: Ready client.
//   - error: Non-nil if credentials cannot be loaded or the service cannot be created.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		creds, err := loadCredentials(ctx, opts.CredentialsFile)
		if err != nil {
			return nil, err
		}

		httpClient = oauth2.NewClient(ctx, creds.TokenSource)
	}

	if opts.QueriesPerSecond > 0 {
		httpClient = throttle(httpClient, opts.QueriesPerSecond)
	}

	clientOptions := []option.ClientOption{option.WithHTTPClient(httpClient)}

	if opts.Endpoint != "" {
		clientOptions = append(clientOptions, option.WithEndpoint(opts.Endpoint))
	}

	if opts.UserAgent != "" {
		clientOptions = append(clientOptions, option.WithUserAgent(opts.UserAgent))
	}

	service, err := gaapi.NewService(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	logrus.WithField("endpoint", service.BasePath).Debug("Created analytics management client")

	return &Client{service: service}, nil
}

// loadCredentials reads a key file, or finds application default credentials when path is empty.
func loadCredentials(ctx context.Context, path string) (*google.Credentials, error) {
	if path == "" {
		creds, err := google.FindDefaultCredentials(ctx, gaapi.AnalyticsEditScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}

		return creds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errReadCredentials, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, gaapi.AnalyticsEditScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return creds, nil
}

// InsertFilter creates a filter under the account.
func (c *Client) InsertFilter(ctx context.Context, accountID string, req types.Request) (*types.Filter, error) {
	apiFilter := toAPIFilter(accountID, req)

	created, err := c.service.Management.Filters.Insert(accountID, apiFilter).Context(ctx).Do()
	if err != nil {
		return nil, &types.RemoteAPIError{Op: "insert", Err: err}
	}

	return fromAPIFilter(created), nil
}

// RemoveFilter deletes a filter.
func (c *Client) RemoveFilter(ctx context.Context, accountID, filterID string) error {
	if _, err := c.service.Management.Filters.Delete(accountID, filterID).Context(ctx).Do(); err != nil {
		return &types.RemoteAPIError{Op: "remove", Err: err}
	}

	return nil
}

// ListFilters returns all filters of the account, following pagination.
func (c *Client) ListFilters(ctx context.Context, accountID string) ([]*types.Filter, error) {
	var filters []*types.Filter

	startIndex := int64(1)

	for {
		page, err := c.service.Management.Filters.List(accountID).
			MaxResults(listPageSize).
			StartIndex(startIndex).
			Context(ctx).
			Do()
		if err != nil {
			return nil, &types.RemoteAPIError{Op: "list", Err: err}
		}

		for _, item := range page.Items {
			filters = append(filters, fromAPIFilter(item))
		}

		logrus.WithFields(logrus.Fields{
			"account":     accountID,
			"start_index": startIndex,
			"page_items":  len(page.Items),
			"total":       page.TotalResults,
		}).Trace("Listed filter page")

		startIndex += int64(len(page.Items))
		if len(page.Items) == 0 || startIndex > page.TotalResults {
			return filters, nil
		}
	}
}

// LinkFilter attaches a filter to the configured view.
func (c *Client) LinkFilter(ctx context.Context, settings types.Settings, filterID string) error {
	link := &gaapi.ProfileFilterLink{
		FilterRef: &gaapi.FilterRef{Id: filterID},
	}

	_, err := c.service.Management.ProfileFilterLinks.
		Insert(settings.AccountID, settings.PropertyID, settings.ProfileID, link).
		Context(ctx).
		Do()
	if err != nil {
		return &types.RemoteAPIError{Op: "link", Err: err}
	}

	return nil
}

// GetProfile reads the configured view.
func (c *Client) GetProfile(ctx context.Context, settings types.Settings) (*types.Profile, error) {
	profile, err := c.service.Management.Profiles.
		Get(settings.AccountID, settings.PropertyID, settings.ProfileID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &types.RemoteAPIError{Op: "get-profile", Err: err}
	}

	return &types.Profile{
		ID:                     profile.Id,
		AccountID:              profile.AccountId,
		PropertyID:             profile.WebPropertyId,
		Name:                   profile.Name,
		ExcludeQueryParameters: profile.ExcludeQueryParameters,
	}, nil
}

// UpdateProfile writes the view's exclude query parameters back.
//
// The view is re-read first so fields gafilter does not model are sent back unchanged.
func (c *Client) UpdateProfile(ctx context.Context, settings types.Settings, profile *types.Profile) error {
	current, err := c.service.Management.Profiles.
		Get(settings.AccountID, settings.PropertyID, settings.ProfileID).
		Context(ctx).
		Do()
	if err != nil {
		return &types.RemoteAPIError{Op: "get-profile", Err: err}
	}

	current.ExcludeQueryParameters = profile.ExcludeQueryParameters

	_, err = c.service.Management.Profiles.
		Update(settings.AccountID, settings.PropertyID, settings.ProfileID, current).
		Context(ctx).
		Do()
	if err != nil {
		return &types.RemoteAPIError{Op: "update-profile", Err: err}
	}

	return nil
}
