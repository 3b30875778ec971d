// Package types defines core interfaces and structs for gafilter.
// It provides abstractions for the analytics management client, filter requests, notifications,
// and the error taxonomy shared by the filter builders and the admin service.
//
// Key components:
//   - Kind: Discriminant for the closed set of filter shapes.
//   - Request: Tagged filter creation request, one field set per Kind.
//   - Filter: Remote filter record as returned by the management API.
//   - Client: Interface for the management API operations used by gafilter.
//   - Notifier: Fire-and-forget notification sink.
//   - RemoteAPIError, ConfigurationError: Error categories surfaced to callers.
//
// Usage example:
//
//	req := types.Request{Kind: types.KindIPAddressExclude, Name: "Office IPs 01", Expression: "10\\.0\\.0\\.1"}
//	filter, err := client.InsertFilter(ctx, settings.AccountID, req)
//	if err != nil {
//	    logrus.WithError(err).Error("Insert failed")
//	}
//
// The package integrates with the filters, analytics, notifications, and actions packages.
package types
