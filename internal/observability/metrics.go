package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "coastal"

// Metrics holds the Prometheus collectors for the monitoring engine.
type Metrics struct {
	SimulationTicks  prometheus.Counter
	ThreatChecks     prometheus.Counter
	AlertsGenerated  *prometheus.CounterVec // labels: severity, origin={auto,manual}
	AlertsAcked      prometheus.Counter
	AlertsArchived   prometheus.Counter
	ActiveAlerts     prometheus.Gauge
	LocationsByLevel *prometheus.GaugeVec // labels: level

	// Notification delivery, labels: channel={toast,push}, outcome={delivered,dropped,failed}.
	Notifications *prometheus.CounterVec

	SchedulerRunning prometheus.Gauge
}

func build() *Metrics {
	return &Metrics{
		SimulationTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_ticks_total",
			Help:      "Simulation ticks applied.",
		}),
		ThreatChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "threat_checks_total",
			Help:      "Threat check ticks applied.",
		}),
		AlertsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_generated_total",
			Help:      "Alerts created, by severity and origin.",
		}, []string{"severity", "origin"}),
		AlertsAcked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_acknowledged_total",
			Help:      "Alerts acknowledged.",
		}),
		AlertsArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_archived_total",
			Help:      "Alerts evicted from memory into the archive.",
		}),
		ActiveAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_alerts",
			Help:      "Unacknowledged alerts.",
		}),
		LocationsByLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "locations",
			Help:      "Monitored locations by current threat level.",
		}, []string{"level"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by channel and outcome.",
		}, []string{"channel", "outcome"}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduler_running",
			Help:      "1 while the periodic tasks are running.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SimulationTicks,
		m.ThreatChecks,
		m.AlertsGenerated,
		m.AlertsAcked,
		m.AlertsArchived,
		m.ActiveAlerts,
		m.LocationsByLevel,
		m.Notifications,
		m.SchedulerRunning,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := build()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return build()
}
