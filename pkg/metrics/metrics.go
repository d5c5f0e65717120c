// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// MessagesTotal tracks chat messages persisted, by author.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total chat messages stored",
		},
		[]string{"role"},
	)

	// FAQMatchesTotal tracks matcher outcomes.
	FAQMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faq_matches_total",
			Help: "FAQ lookups by outcome (question, keyword, none)",
		},
		[]string{"outcome"},
	)

	// FAQLoadFailuresTotal tracks FAQ documents that could not be read or decoded.
	FAQLoadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faq_load_failures_total",
			Help: "FAQ document loads that failed",
		},
	)

	// HistoryClearsTotal tracks history clear operations.
	HistoryClearsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_history_clears_total",
			Help: "Total chat history clear operations",
		},
	)

	// HistoryMessagesDeleted tracks messages removed by history clears.
	HistoryMessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_history_messages_deleted_total",
			Help: "Chat messages removed by history clears",
		},
	)

	// EventPublishFailuresTotal tracks chat events that could not be published.
	EventPublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_event_publish_failures_total",
			Help: "Chat events that failed to publish to NATS",
		},
		[]string{"kind"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordMessage counts a stored chat message.
func RecordMessage(role string) {
	MessagesTotal.WithLabelValues(role).Inc()
}

// RecordMatch counts a matcher outcome.
func RecordMatch(outcome string) {
	FAQMatchesTotal.WithLabelValues(outcome).Inc()
}

// RecordClear counts a history clear and the rows it removed.
func RecordClear(deleted int64) {
	HistoryClearsTotal.Inc()
	HistoryMessagesDeleted.Add(float64(deleted))
}
