// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommender_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommender_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	CatalogRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommender_catalog_rows",
			Help: "Number of listings loaded into the catalog",
		},
		[]string{"source"},
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_recommendations_total",
			Help: "Recommendation requests served, by outcome",
		},
		[]string{"outcome"},
	)

	ResumesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_resumes_parsed_total",
			Help: "Resume uploads processed, by detected format",
		},
		[]string{"format"},
	)

	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_applications_submitted_total",
			Help: "Applications accepted by the intake endpoint",
		},
	)

	OTPEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_otp_events_total",
			Help: "OTP lifecycle events (issued, verified, expired, exhausted, invalid, not_found)",
		},
		[]string{"event"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_notifications_total",
			Help: "Notification delivery attempts by channel, kind and status",
		},
		[]string{"channel", "kind", "status"},
	)
)
