package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/gafilter/internal/util"
)

// AddExcludeQueryParameters adds comma-separated query parameters to the view's exclusion list.
//
// Parameters already present are skipped by exact token match. When nothing is new, the view is
// not updated.
//
// Parameters:
//   - ctx: Context for the remote calls.
//   - params: Comma-separated parameter names, e.g. "utm_source,fbclid".
//
// Returns:
//   - []string: Parameters that were added.
//   - error: Remote error, or an error when params holds no parameter.
func (a *Admin) AddExcludeQueryParameters(ctx context.Context, params string) ([]string, error) {
	if len(util.SplitCSV(params)) == 0 {
		return nil, fmt.Errorf("%w: %q", errNoParameters, params)
	}

	profile, err := a.client.GetProfile(ctx, a.settings)
	if err != nil {
		err = remoteError("get-profile", err)
		a.metrics.RemoteError(err)
		logrus.WithField("profile", a.settings.ProfileID).WithError(err).Error("Failed to read view")

		return nil, err
	}

	if profile == nil {
		return nil, fmt.Errorf("%w: %s", errNoProfile, a.settings.ProfileID)
	}

	merged, added := util.MergeCSV(profile.ExcludeQueryParameters, params)
	if len(added) == 0 {
		logrus.WithField("profile", profile.ID).Info("Exclude query parameters already present")

		return added, nil
	}

	profile.ExcludeQueryParameters = merged

	if err := a.client.UpdateProfile(ctx, a.settings, profile); err != nil {
		err = remoteError("update-profile", err)
		a.metrics.RemoteError(err)
		logrus.WithField("profile", profile.ID).WithError(err).Error("Failed to update view")

		return nil, err
	}

	a.notify(queryParamMessage, titleQueryParams)

	logrus.WithFields(logrus.Fields{
		"profile": profile.ID,
		"added":   strings.Join(added, ","),
	}).Info("Added exclude query parameters")

	return added, nil
}
