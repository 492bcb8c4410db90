package model

import (
	"sync/atomic"
)

// RequestModel tracks whether a recognition request is in flight. The zero
// value is idle and usable. Atomic because a signal handler may observe it
// while the presenter runs a request.
type RequestModel struct{ pending atomic.Bool }

// TryBegin marks a request as started. It reports false when one is already pending.
func (m *RequestModel) TryBegin() bool {
	if m == nil {
		return false
	}
	return m.pending.CompareAndSwap(false, true)
}

// Done clears the pending flag.
func (m *RequestModel) Done() {
	if m == nil {
		return
	}
	m.pending.Store(false)
}

// Pending reports whether a request is in flight.
func (m *RequestModel) Pending() bool {
	if m == nil {
		return false
	}
	return m.pending.Load()
}
