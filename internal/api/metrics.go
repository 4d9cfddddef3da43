package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"burlometro/internal/analysis"
)

type metrics struct {
	analyses  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	rejected  prometheus.Counter
	duration  *prometheus.HistogramVec
	handler   http.Handler
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "burlometro",
			Name:      "analyses_total",
			Help:      "Messages analyzed, by verdict source and risk level.",
		}, []string{"source", "risk_level"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "burlometro",
			Name:      "provider_fallbacks_total",
			Help:      "Provider calls discarded in favour of the rule-based scorer, by reason.",
		}, []string{"reason"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "burlometro",
			Name:      "rejected_requests_total",
			Help:      "Analyze requests rejected for a missing or blank message.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "burlometro",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent producing a verdict.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
	}
	reg.MustRegister(m.analyses, m.fallbacks, m.rejected, m.duration)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

func (m *metrics) observe(report analysis.Report) {
	m.analyses.WithLabelValues(string(report.Source), report.Result.RiskLevel.String()).Inc()
	m.duration.WithLabelValues(string(report.Source)).Observe(float64(report.DurationMs) / 1000)
	switch report.FallbackReason {
	case "", analysis.ReasonNoProvider:
	default:
		m.fallbacks.WithLabelValues(report.FallbackReason).Inc()
	}
}
