package metrics

import "github.com/prometheus/client_golang/prometheus"

// ToolCallMetrics exposes counters/histograms for voice tool-call dispatch.
type ToolCallMetrics struct {
	callsTotal  *prometheus.CounterVec
	callLatency *prometheus.HistogramVec
}

func NewToolCallMetrics(reg prometheus.Registerer) *ToolCallMetrics {
	m := &ToolCallMetrics{
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealership",
			Subsystem: "toolcall",
			Name:      "dispatch_total",
			Help:      "Total dispatched voice tool calls",
		}, []string{"function", "status"}),
		callLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dealership",
			Subsystem: "toolcall",
			Name:      "dispatch_latency_seconds",
			Help:      "Latency of voice tool-call handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.callsTotal, m.callLatency)
	return m
}

func (m *ToolCallMetrics) ObserveToolCall(function, status string, seconds float64) {
	if m == nil {
		return
	}
	m.callsTotal.WithLabelValues(function, status).Inc()
	m.callLatency.WithLabelValues(function).Observe(seconds)
}

// CommsMetrics exposes counters for the scheduled-communication sweeper.
type CommsMetrics struct {
	sentTotal   *prometheus.CounterVec
	failedTotal *prometheus.CounterVec
}

func NewCommsMetrics(reg prometheus.Registerer) *CommsMetrics {
	m := &CommsMetrics{
		sentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealership",
			Subsystem: "comms",
			Name:      "sent_total",
			Help:      "Total scheduled communications delivered",
		}, []string{"channel"}),
		failedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealership",
			Subsystem: "comms",
			Name:      "failed_total",
			Help:      "Total scheduled communications that failed delivery",
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sentTotal, m.failedTotal)
	return m
}

func (m *CommsMetrics) MessageSent(channel string) {
	if m == nil {
		return
	}
	m.sentTotal.WithLabelValues(channel).Inc()
}

func (m *CommsMetrics) MessageFailed(channel string) {
	if m == nil {
		return
	}
	m.failedTotal.WithLabelValues(channel).Inc()
}
