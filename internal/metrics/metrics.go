package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freelance_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "freelance_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freelance_escrow_orders_created_total",
			Help: "Total number of escrow orders created",
		},
	)

	EscrowFundedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freelance_escrow_funded_total",
			Help: "Total number of payments verified and escrowed",
		},
	)

	ReleasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freelance_escrow_releases_total",
			Help: "Total number of escrow releases",
		},
		[]string{"trigger"},
	)

	ReleaseConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freelance_escrow_release_conflicts_total",
			Help: "Release attempts rejected because the payment was not escrowed",
		},
	)

	PayoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freelance_payouts_total",
			Help: "Total number of payout dispatch attempts",
		},
		[]string{"mode", "status"},
	)

	PayoutQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "freelance_payout_queue_length",
			Help: "Current length of the payout queue",
		},
	)

	AutoReleaseScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freelance_auto_release_scans_total",
			Help: "Total number of auto-release scan passes",
		},
	)

	AutoReleaseSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freelance_auto_release_skipped_total",
			Help: "Payments skipped by the auto-release scanner",
		},
		[]string{"reason"},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freelance_bookings_created_total",
			Help: "Total number of bookings materialized from funded payments",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordRelease(trigger string) {
	ReleasesTotal.WithLabelValues(trigger).Inc()
}

func RecordPayout(mode, status string) {
	PayoutsTotal.WithLabelValues(mode, status).Inc()
}
