// Package metrics tracks gafilter's remote changes with Prometheus counters.
//
// Key components:
//   - Metrics: Counters for created and removed filters, batches and remote errors.
//   - Default: Process-wide handler backed by a dedicated registry.
//   - WriteTextfile: Exports the registry in the node_exporter textfile format.
//
// Usage example:
//
//	m := metrics.Default()
//	m.FilterCreated(types.KindIPAddressExclude)
//	if err := metrics.WriteTextfile("/var/lib/node_exporter/gafilter.prom", m.Gatherer()); err != nil {
//	    logrus.WithError(err).Warn("Failed to write metrics")
//	}
package metrics
