package verifier

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/snehendu098/ghost/wallet/pkg/account"
)

// Metrics holds the Prometheus collectors of the verification service.
type Metrics struct {
	VerifyRequests  *prometheus.CounterVec
	DeriveRequests  *prometheus.CounterVec
	RecoverRequests *prometheus.CounterVec
	DecodeErrors    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors with the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry registers the collectors with registry, or with the
// default registerer when registry is nil.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		VerifyRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_verify_requests_total",
			Help: "Signature verification requests by result (valid, invalid, bad_request)",
		}, []string{"result"}),
		DeriveRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_derive_requests_total",
			Help: "View key to address derivation requests by result",
		}, []string{"result"}),
		RecoverRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_recover_requests_total",
			Help: "Signer address recovery requests by result",
		}, []string{"result"}),
		DecodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_decode_errors_total",
			Help: "Rejected key and address encodings by failure kind",
		}, []string{"kind"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallet_http_request_duration_seconds",
			Help:    "Latency of verification service requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}
}

func (m *Metrics) recordDecodeError(err error) {
	m.DecodeErrors.WithLabelValues(decodeKind(err)).Inc()
}

// decodeKind maps a decode failure to its metric label.
func decodeKind(err error) string {
	switch {
	case errors.Is(err, account.ErrInvalidPrefix):
		return "prefix"
	case errors.Is(err, account.ErrInvalidChecksum):
		return "checksum"
	case errors.Is(err, account.ErrInvalidCharacter):
		return "character"
	case errors.Is(err, account.ErrInvalidLength):
		return "length"
	case errors.Is(err, account.ErrInvalidValue):
		return "value"
	default:
		return "unknown"
	}
}
