package feed

import "sync"

// Mailbox is a single-slot, latest-wins handoff between the feed
// receivers and the controller loop. A new command overwrites any
// unconsumed one; the display always reflects the most recent request.
type Mailbox struct {
	mu    sync.Mutex
	value string
	full  bool
}

// Put stores a command, replacing any pending one.
func (m *Mailbox) Put(value string) {
	m.mu.Lock()
	m.value = value
	m.full = true
	m.mu.Unlock()
}

// Take removes and returns the pending command, if any.
func (m *Mailbox) Take() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.full {
		return "", false
	}
	m.full = false
	return m.value, true
}
