package observability

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/jwt-issuer/internal/events"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	latencyTotal map[string]time.Duration
	errorCount   map[string]int64
	outcomeCount map[string]int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests     map[string]int64   `json:"requests"`
	AvgLatencyMs map[string]float64 `json:"avg_latency_ms"`
	Errors       map[string]int64   `json:"errors"`
	Outcomes     map[string]int64   `json:"outcomes"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		latencyTotal: make(map[string]time.Duration),
		errorCount:   make(map[string]int64),
		outcomeCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.latencyTotal[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordOutcome counts issuance outcomes, keyed by event type and error code.
func (m *Metrics) RecordOutcome(eventType events.EventType, code string) {
	if m == nil {
		return
	}
	key := string(eventType)
	if code != "" {
		key += "|" + code
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomeCount[key]++
}

// SubscribeTo counts every issuance event published on d.
func (m *Metrics) SubscribeTo(d events.Dispatcher) {
	handler := func(_ context.Context, e events.Event) error {
		m.RecordOutcome(e.Type, e.Code)
		return nil
	}
	for _, t := range []events.EventType{events.EventTokenIssued, events.EventIssuanceRejected, events.EventSigningFailed} {
		d.Subscribe(t, handler)
	}
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Requests:     make(map[string]int64, len(m.requestCount)),
		AvgLatencyMs: make(map[string]float64, len(m.requestCount)),
		Errors:       make(map[string]int64, len(m.errorCount)),
		Outcomes:     make(map[string]int64, len(m.outcomeCount)),
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
		snap.AvgLatencyMs[k] = float64(m.latencyTotal[k].Microseconds()) / 1000 / float64(v)
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.outcomeCount {
		snap.Outcomes[k] = v
	}
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
