package app

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts presses, input events and redraws.
type Metrics struct {
	mu      sync.RWMutex
	presses map[string]uint64

	repeats       atomic.Uint64
	inputCount    atomic.Uint64
	inputDropped  atomic.Uint64
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	reloads       atomic.Uint64
	reloadErrors  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		presses:   make(map[string]uint64),
		startTime: time.Now(),
	}
}

// RecordPress counts a press on the element with the given id.
func (m *Metrics) RecordPress(id string, repeat bool) {
	m.mu.Lock()
	m.presses[id]++
	m.mu.Unlock()
	if repeat {
		m.repeats.Add(1)
	}
}

// RecordInput counts a terminal input event.
func (m *Metrics) RecordInput() {
	m.inputCount.Add(1)
}

// RecordInputDropped counts an input event the loop could not accept.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(duration.Nanoseconds())
}

// RecordReload counts a configuration reload attempt.
func (m *Metrics) RecordReload(err error) {
	m.reloads.Add(1)
	if err != nil {
		m.reloadErrors.Add(1)
	}
}

// Presses returns the press count for id.
func (m *Metrics) Presses(id string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.presses[id]
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	presses := make(map[string]uint64, len(m.presses))
	for k, v := range m.presses {
		presses[k] = v
	}
	m.mu.RUnlock()

	renderCount := m.renderCount.Load()
	var avgRenderNs int64
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Presses:      presses,
		Repeats:      m.repeats.Load(),
		InputCount:   m.inputCount.Load(),
		InputDropped: m.inputDropped.Load(),
		RenderCount:  renderCount,
		AvgRenderNs:  avgRenderNs,
		Reloads:      m.reloads.Load(),
		ReloadErrors: m.reloadErrors.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	m.presses = make(map[string]uint64)
	m.startTime = time.Now()
	m.mu.Unlock()

	m.repeats.Store(0)
	m.inputCount.Store(0)
	m.inputDropped.Store(0)
	m.renderCount.Store(0)
	m.renderTotalNs.Store(0)
	m.reloads.Store(0)
	m.reloadErrors.Store(0)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Presses      map[string]uint64
	Repeats      uint64
	InputCount   uint64
	InputDropped uint64
	RenderCount  uint64
	AvgRenderNs  int64
	Reloads      uint64
	ReloadErrors uint64
}

// TotalPresses returns the sum of every button's presses.
func (s MetricsSnapshot) TotalPresses() uint64 {
	var n uint64
	for _, v := range s.Presses {
		n += v
	}
	return n
}

// StatusLine formats the press counts of ids in the given order.
func (s MetricsSnapshot) StatusLine(ids []string) string {
	if len(ids) == 0 {
		ids = make([]string, 0, len(s.Presses))
		for id := range s.Presses {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}
	parts := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %d", id, s.Presses[id]))
	}
	if s.Repeats > 0 {
		parts = append(parts, fmt.Sprintf("repeats: %d", s.Repeats))
	}
	return strings.Join(parts, "  ")
}
