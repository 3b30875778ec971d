// Package analytics implements types.Client on top of the Google Analytics Management API v3.
//
// Key components:
//   - NewClient: Builds a client from a service-account key file or application default credentials.
//   - Client: Filter insert, remove, list and profile link operations, plus view read and update.
//   - toAPIFilter, fromAPIFilter: Conversion between types.Request/types.Filter and API records.
//
// Usage example:
//
//	client, err := analytics.NewClient(ctx, analytics.Options{CredentialsFile: "key.json"})
//	if err != nil {
//	    logrus.WithError(err).Fatal("Failed to create analytics client")
//	}
//	filters, err := client.ListFilters(ctx, "12345")
//
// Every API failure is returned as a *types.RemoteAPIError naming the operation.
package analytics
