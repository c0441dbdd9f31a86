package incident

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the incident subsystem.
type Metrics struct {
	CreatesTotal       *prometheus.CounterVec
	CreateConfidence   prometheus.Histogram
	StatusUpdatesTotal *prometheus.CounterVec
	RejectsTotal       *prometheus.CounterVec
	ListDuration       prometheus.Histogram
	ListResultSize     prometheus.Histogram
	NotifiesTotal      *prometheus.CounterVec
}

// NewMetrics registers and returns incident metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CreatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_incidents_created_total",
			Help: "Total incidents created by triaged severity and category.",
		}, []string{"severity", "category"}),
		CreateConfidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_incident_confidence_score",
			Help:    "Confidence score assigned at creation.",
			Buckets: prometheus.LinearBuckets(0.5, 0.05, 11), // 0.5 .. 1.0
		}),
		StatusUpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_incident_status_updates_total",
			Help: "Total status transitions by target status.",
		}, []string{"status"}),
		RejectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_incident_rejects_total",
			Help: "Total rejected operations by reason.",
		}, []string{"reason"}),
		ListDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_incident_list_duration_seconds",
			Help:    "Duration of list queries including snapshot and sort.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms .. ~1s
		}),
		ListResultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_incident_list_result_size",
			Help:    "Post-filter result set size per list query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. ~16k
		}),
		NotifiesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_incident_notifications_total",
			Help: "Total creation notifications by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.CreatesTotal,
		m.CreateConfidence,
		m.StatusUpdatesTotal,
		m.RejectsTotal,
		m.ListDuration,
		m.ListResultSize,
		m.NotifiesTotal,
	)

	return m
}
