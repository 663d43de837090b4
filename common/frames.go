package common

import (
	"sort"
	"sync"
)

// FrameScheduler is the per-frame clock: requestAnimationFrame in the browser,
// a ticker in the terminal. Callbacks receive a timestamp in milliseconds.
// A late host simply delivers fewer frames; nothing is queued for catch-up.
type FrameScheduler interface {
	RequestFrame(cb func(timestamp float64)) int
	CancelFrame(id int)
}

// ManualFrames is a FrameScheduler driven by explicit Advance calls.
type ManualFrames struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func(float64)
}

// NewManualFrames creates an empty manual frame clock.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{pending: make(map[int]func(float64))}
}

// RequestFrame queues cb for the next Advance and returns its handle (never 0).
func (m *ManualFrames) RequestFrame(cb func(float64)) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.pending[m.nextID] = cb
	return m.nextID
}

// CancelFrame drops a queued callback. Unknown handles are ignored.
func (m *ManualFrames) CancelFrame(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, id)
}

// Advance runs every callback queued before the call, in request order.
// Callbacks requested while advancing wait for the next Advance.
func (m *ManualFrames) Advance(timestamp float64) int {
	m.mu.Lock()
	ids := make([]int, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	cbs := make([]func(float64), 0, len(ids))
	for _, id := range ids {
		cbs = append(cbs, m.pending[id])
		delete(m.pending, id)
	}
	m.mu.Unlock()

	for _, cb := range cbs {
		cb(timestamp)
	}
	return len(cbs)
}

// Pending returns the number of queued callbacks.
func (m *ManualFrames) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
