package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

var metrics *Metrics

// Metrics handles counting remote filter changes.
type Metrics struct {
	created      *prometheus.CounterVec // Filters created, by kind.
	batches      *prometheus.CounterVec // Batches produced from value lists, by kind.
	removed      prometheus.Counter     // Filters removed.
	remoteErrors *prometheus.CounterVec // Failed remote calls, by operation.
	gatherer     prometheus.Gatherer
}

// NewWithRegistry creates a new Metrics handler with a custom Prometheus registry.
//
// Parameters:
//   - registry: Registry to register the collectors with; it is also used as the gatherer.
//
// Returns:
//   - (*Metrics, error): Metrics handler, or an error if a collector is already registered.
func NewWithRegistry(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gafilter_filters_created_total",
			Help: "Number of analytics filters created",
		}, []string{"kind"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gafilter_batches_total",
			Help: "Number of filter batches produced from value lists",
		}, []string{"kind"}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gafilter_filters_removed_total",
			Help: "Number of analytics filters removed",
		}),
		remoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gafilter_remote_errors_total",
			Help: "Number of failed management API calls",
		}, []string{"operation"}),
		gatherer: registry,
	}

	for _, collector := range []prometheus.Collector{m.created, m.batches, m.removed, m.remoteErrors} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return m, nil
}

// Default initializes or returns the process-wide Metrics handler. It panics on registration failure.
func Default() *Metrics {
	if metrics != nil {
		return metrics
	}

	var err error

	metrics, err = NewWithRegistry(prometheus.NewRegistry())
	if err != nil {
		panic(err)
	}

	return metrics
}

// Gatherer returns the registry backing the handler.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// FilterCreated counts a created filter.
func (m *Metrics) FilterCreated(kind types.Kind) {
	if m == nil {
		return
	}

	m.created.WithLabelValues(kind.String()).Inc()
}

// BatchProduced counts a batch handed to the creation function.
func (m *Metrics) BatchProduced(kind types.Kind) {
	if m == nil {
		return
	}

	m.batches.WithLabelValues(kind.String()).Inc()
}

// FilterRemoved counts a removed filter.
func (m *Metrics) FilterRemoved() {
	if m == nil {
		return
	}

	m.removed.Inc()
}

// RemoteError counts a failed remote call. Errors that are not *types.RemoteAPIError are counted as "unknown".
func (m *Metrics) RemoteError(err error) {
	if m == nil || err == nil {
		return
	}

	operation := "unknown"

	var remoteErr *types.RemoteAPIError
	if errors.As(err, &remoteErr) {
		operation = remoteErr.Op
	}

	m.remoteErrors.WithLabelValues(operation).Inc()
}

// WriteTextfile writes the gathered metrics to path in the text exposition format.
//
// The file is replaced atomically.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
