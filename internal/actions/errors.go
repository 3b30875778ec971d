package actions

import (
	"errors"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// Errors for admin operations.
var (
	// errNoProfile indicates the management API returned an empty reporting view.
	errNoProfile = errors.New("reporting view not found")
	// errNoParameters indicates AddExcludeQueryParameters was called without any parameter.
	errNoParameters = errors.New("no query parameters given")
)

// remoteError tags err with the failed operation unless the client already did.
func remoteError(op string, err error) error {
	var remoteErr *types.RemoteAPIError
	if errors.As(err, &remoteErr) {
		return err
	}

	return &types.RemoteAPIError{Op: op, Err: err}
}
