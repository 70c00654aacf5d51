package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submissions_created_total",
			Help: "Total number of interview submissions stored",
		},
	)

	SubmissionValidationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submission_validation_failures_total",
			Help: "Total number of submissions rejected for missing fields",
		},
	)

	SubmissionsUnauthorized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submissions_unauthorized_total",
			Help: "Total number of submission attempts without a session",
		},
	)

	SubmissionPagesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submission_pages_served_total",
			Help: "Total number of submission pages returned",
		},
	)

	SubmissionPageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "submission_page_size",
			Help:    "Number of submissions returned per page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)
)
