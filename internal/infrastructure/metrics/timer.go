package metrics

import "time"

// CallTimer measures one provider call for the latency histogram.
type CallTimer struct {
	provider  string
	operation string
	started   time.Time
}

// NewCallTimer starts timing a call.
func NewCallTimer(provider string, operation string) *CallTimer {
	return &CallTimer{provider: provider, operation: operation, started: time.Now()}
}

// Observe records the elapsed time.
func (t *CallTimer) Observe() {
	ProviderLatency.WithLabelValues(t.provider, t.operation).Observe(time.Since(t.started).Seconds())
}
