package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbox_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbox_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InferenceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbox_inference_requests_total",
			Help: "Total number of upstream inference calls.",
		},
		[]string{"status"},
	)

	InferenceRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "chatbox_inference_request_duration_seconds",
			Help: "Upstream inference call duration in seconds.",
			// Inference calls run far longer than typical HTTP handlers.
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	SessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbox_sessions_created_total",
			Help: "Total number of chat sessions created.",
		},
	)

	VisitsRecordedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbox_visits_recorded_total",
			Help: "Total number of page visits recorded.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		InferenceRequestsTotal,
		InferenceRequestDuration,
		SessionsCreatedTotal,
		VisitsRecordedTotal,
	)
}
