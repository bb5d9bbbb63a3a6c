package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sessions created lazily by any ingestion call
	sessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_sessions_created_total",
			Help: "Total number of visitor sessions created",
		},
	)

	// Events recorded, partitioned by kind (page_view, section_view, click)
	eventsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_recorded_total",
			Help: "Total number of tracking events recorded",
		},
		[]string{"kind"},
	)

	// Leads captured, partitioned by kind (free_lesson, failed)
	leadsCapturedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_leads_captured_total",
			Help: "Total number of lead records captured",
		},
		[]string{"kind"},
	)
)
