// Package metrics provides Prometheus counters for codec activity.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "snmpber"

// Operation labels.
const (
	OpEncode = "encode"
	OpDecode = "decode"
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the codec metrics on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Operations  *prometheus.CounterVec
	Bytes       *prometheus.CounterVec
	MessageSize *prometheus.HistogramVec
}

// New creates and registers the codec metrics under namespace.
func New(namespace string) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of encode and decode operations by top-level kind and result",
		}, []string{"op", "kind", "result"}),
		Bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Total number of bytes successfully encoded or decoded",
		}, []string{"op"}),
		MessageSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_size_bytes",
			Help:      "Size of encoded or decoded messages",
			Buckets:   []float64{64, 128, 256, 484, 512, 1024, 1472, 4096, 65507},
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{m.Operations, m.Bytes, m.MessageSize} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Observe records one operation. kind is the kind of the top-level value; n
// is the size of the encoding and only counted when err is nil.
func (m *Metrics) Observe(op string, kind ber.Kind, n int, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.Operations.WithLabelValues(op, kind.String(), result).Inc()
	if err == nil {
		m.Bytes.WithLabelValues(op).Add(float64(n))
		m.MessageSize.WithLabelValues(op).Observe(float64(n))
	}
}

// WriteTextfile writes the current metric values in the text exposition
// format to path, for node_exporter's textfile collector. The file is
// replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
