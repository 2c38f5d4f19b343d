package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestToolCallMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewToolCallMetrics(reg)
	m.ObserveToolCall("checkInventory", "ok", 0.05)
	m.ObserveToolCall("checkInventory", "error", 0.2)
}

func TestCommsMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCommsMetrics(reg)
	m.MessageSent("sms")
	m.MessageFailed("email")
}

func TestMetricsNilSafe(t *testing.T) {
	var tm *ToolCallMetrics
	tm.ObserveToolCall("fn", "ok", 0.1)

	var cm *CommsMetrics
	cm.MessageSent("sms")
	cm.MessageFailed("sms")
}
