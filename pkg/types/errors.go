package types

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedKind indicates a filter kind the requested operation cannot handle.
	ErrUnsupportedKind = errors.New("unsupported filter kind")
	// ErrInvalidRequest indicates a filter request failed construction checks.
	ErrInvalidRequest = errors.New("invalid filter request")
	// ErrMissingSetting indicates a required account, property, view or site setting is empty.
	ErrMissingSetting = errors.New("missing required setting")
)

// RemoteAPIError reports a failed management API call.
type RemoteAPIError struct {
	Op  string // insert, link, remove, list, get-profile or update-profile.
	Err error
}

// Error implements error.
func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("remote api %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a filter kind passed to a dispatch table that does not handle it.
type ConfigurationError struct {
	Kind Kind
	Err  error
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for kind %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
