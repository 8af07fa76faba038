package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ConversationMetrics exposes counters/histograms for the qualification flow.
type ConversationMetrics struct {
	turnsTotal     *prometheus.CounterVec
	turnLatency    *prometheus.HistogramVec
	leadsTotal     *prometheus.CounterVec
	notifyTotal    *prometheus.CounterVec
	broadcastTotal prometheus.Counter
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smeflow",
			Subsystem: "dialogue",
			Name:      "turns_total",
			Help:      "Total conversation turns handled",
		}, []string{"stage", "outcome"}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "smeflow",
			Subsystem: "dialogue",
			Name:      "turn_latency_seconds",
			Help:      "Latency of one conversation turn including persistence",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smeflow",
			Subsystem: "leads",
			Name:      "created_total",
			Help:      "Total leads committed",
		}, []string{"source", "urgency"}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smeflow",
			Subsystem: "notify",
			Name:      "sent_total",
			Help:      "Total operator notifications attempted",
		}, []string{"status"}),
		broadcastTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smeflow",
			Subsystem: "dialogue",
			Name:      "broadcasts_total",
			Help:      "Total lead-list refresh signals emitted",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.turnLatency, m.leadsTotal, m.notifyTotal, m.broadcastTotal)
	return m
}

func (m *ConversationMetrics) ObserveTurn(stage, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(stage, outcome).Inc()
	m.turnLatency.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *ConversationMetrics) ObserveLeadCreated(source, urgency string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(source, urgency).Inc()
}

func (m *ConversationMetrics) ObserveNotification(status string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(status).Inc()
}

func (m *ConversationMetrics) ObserveBroadcast() {
	if m == nil {
		return
	}
	m.broadcastTotal.Inc()
}
