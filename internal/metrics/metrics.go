// Package metrics provides the centralized Prometheus metrics registry
// for the prediction pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_oracle",
		Name:      "predictions_total",
		Help:      "Total number of predictions produced",
	})
	InsufficientHistoryTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_oracle",
		Name:      "insufficient_history_total",
		Help:      "Total number of prediction requests rejected for lack of historical data",
	})
	ProviderErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_oracle",
		Name:      "provider_errors_total",
		Help:      "Total number of upstream provider failures",
	}, []string{"provider"})
	EvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_oracle",
		Name:      "evaluations_total",
		Help:      "Total number of evaluation runs",
	})
)

// Gauge metrics
var (
	CacheEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_oracle",
		Name:      "cache_entries",
		Help:      "Number of physically stored entries per cache",
	}, []string{"cache"})
	CacheHitRatio = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_oracle",
		Name:      "cache_hit_ratio",
		Help:      "Hit ratio per cache since last clear",
	}, []string{"cache"})
	EvaluationAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_oracle",
		Name:      "evaluation_accuracy",
		Help:      "Accuracy of the most recent evaluation run",
	})
	EvaluationBrierScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_oracle",
		Name:      "evaluation_brier_score",
		Help:      "Brier score of the most recent evaluation run",
	})
	EvaluationLogLoss = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_oracle",
		Name:      "evaluation_log_loss",
		Help:      "Log-loss of the most recent evaluation run",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_oracle",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of prediction requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	ProviderFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridiron_oracle",
		Name:      "provider_fetch_duration_seconds",
		Help:      "Duration of upstream provider fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(InsufficientHistoryTotal)
		registry.MustRegister(ProviderErrorsTotal)
		registry.MustRegister(EvaluationsTotal)

		registry.MustRegister(CacheEntries)
		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(EvaluationAccuracy)
		registry.MustRegister(EvaluationBrierScore)
		registry.MustRegister(EvaluationLogLoss)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(ProviderFetchDuration)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}

// RecordEvaluation updates the evaluation gauges after a run.
func RecordEvaluation(accuracy, brierScore, logLoss float64) {
	EvaluationsTotal.Inc()
	EvaluationAccuracy.Set(accuracy)
	EvaluationBrierScore.Set(brierScore)
	EvaluationLogLoss.Set(logLoss)
}
