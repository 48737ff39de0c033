// Package metrics provides Prometheus metrics for capability resolution,
// sessions and capture controls.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/smazurov/streamcaps/internal/capability"
)

// Resolver request results.
const (
	ResultOK                 = "ok"
	ResultUnknownEncoder     = "unknown_encoder"
	ResultUnknownDevice      = "unknown_device"
	ResultBackendUnavailable = "backend_unavailable"
	ResultError              = "error"
)

var (
	resolverRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamcaps",
		Subsystem: "resolver",
		Name:      "requests_total",
		Help:      "Capability resolver requests by operation and result",
	}, []string{"operation", "result"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "streamcaps",
		Name:      "sessions_active",
		Help:      "Registered streaming sessions",
	})

	controlWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamcaps",
		Name:      "control_writes_total",
		Help:      "Capture control writes that reached a device",
	}, []string{"control"})

	catalogEncoders = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "streamcaps",
		Name:      "catalog_encoders",
		Help:      "Encoders in the active catalog",
	}, []string{"media"})
)

// Result maps a resolver error to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, capability.ErrUnknownEncoder):
		return ResultUnknownEncoder
	case errors.Is(err, capability.ErrUnknownDevice):
		return ResultUnknownDevice
	case errors.Is(err, capability.ErrBackendUnavailable):
		return ResultBackendUnavailable
	default:
		return ResultError
	}
}

// ObserveResolverRequest counts one resolver call.
func ObserveResolverRequest(operation string, err error) {
	resolverRequests.WithLabelValues(operation, Result(err)).Inc()
}

// SessionOpened increments the active session gauge.
func SessionOpened() {
	sessionsActive.Inc()
}

// SessionClosed decrements the active session gauge.
func SessionClosed() {
	sessionsActive.Dec()
}

// ControlWritten counts a control write.
func ControlWritten(control string) {
	controlWrites.WithLabelValues(control).Inc()
}

// SetCatalogEncoders records the size of the active catalog.
func SetCatalogEncoders(video, audio int) {
	catalogEncoders.WithLabelValues("video").Set(float64(video))
	catalogEncoders.WithLabelValues("audio").Set(float64(audio))
}
