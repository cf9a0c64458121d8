package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tierhub_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tierhub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	PlanCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tierhub_plan_cache_lookups_total",
			Help: "Plan catalogue cache lookups by result",
		},
		[]string{"result"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tierhub_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	SubscriptionActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tierhub_subscription_activations_total",
			Help: "Subscription activations by tier and billing cycle",
		},
		[]string{"tier", "billing_cycle"},
	)

	ContentViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tierhub_content_views_total",
			Help: "Content item views by access result",
		},
		[]string{"result"},
	)
)
