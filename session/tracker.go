package session

import (
	"sync"
	"time"

	"custls"
)

// State mirrors the §3 data model's SessionState: `{ config, ticket,
// established, resume_count }`.
type State struct {
	Config      custls.ClientHelloConfig
	Ticket      []byte
	Established bool
	ResumeCount int

	createdAt time.Time
}

// Stats is the read-only snapshot handed back to callers.
type Stats struct {
	Established bool
	ResumeCount int
	HasTicket   bool
	CreatedAt   time.Time
}

// Tracker is the bounded SessionId->State map with oldest-first eviction.
// Zero value is not usable; construct with New.
type Tracker struct {
	mu      sync.Mutex
	maxSize int
	order   []SessionId
	entries map[SessionId]*State
}

// New builds a Tracker bounded to maxSize live sessions.
func New(maxSize int) *Tracker {
	return &Tracker{
		maxSize: maxSize,
		entries: make(map[SessionId]*State),
	}
}

// RecordSession creates (or overwrites) id's entry with config as its
// read-only baseline, evicting the oldest session first if the tracker is
// full and id is new.
func (t *Tracker) RecordSession(id SessionId, config custls.ClientHelloConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[id]; !exists {
		if t.maxSize > 0 && len(t.entries) >= t.maxSize {
			t.evictOldestLocked()
		}
		t.order = append(t.order, id)
	}
	t.entries[id] = &State{Config: config.Clone(), createdAt: time.Now()}
}

func (t *Tracker) evictOldestLocked() {
	for len(t.order) > 0 {
		oldest := t.order[0]
		t.order = t.order[1:]
		if _, ok := t.entries[oldest]; ok {
			delete(t.entries, oldest)
			return
		}
	}
}

// GetConfig returns a clone of id's baseline config. Per the §3 invariant,
// repeated calls within a live session return the same stored fields
// (property P16) — only the caller's own per-connection randomization varies
// outside this baseline.
func (t *Tracker) GetConfig(id SessionId) (custls.ClientHelloConfig, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.entries[id]
	if !ok {
		return custls.ClientHelloConfig{}, false
	}
	return state.Config.Clone(), true
}

// MarkEstablished flips id's Established flag, if the session exists.
func (t *Tracker) MarkEstablished(id SessionId) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.entries[id]; ok {
		state.Established = true
	}
}

// RecordTicket stores a session ticket for later resumption.
func (t *Tracker) RecordTicket(id SessionId, ticket []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.entries[id]; ok {
		state.Ticket = append([]byte(nil), ticket...)
	}
}

// RecordResumption increments id's resume count, satisfying property P14's
// monotonic-increment requirement.
func (t *Tracker) RecordResumption(id SessionId) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.entries[id]; ok {
		state.ResumeCount++
	}
}

// Stats returns a snapshot of id's tracked fields.
func (t *Tracker) Stats(id SessionId) (Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.entries[id]
	if !ok {
		return Stats{}, false
	}
	return Stats{
		Established: state.Established,
		ResumeCount: state.ResumeCount,
		HasTicket:   len(state.Ticket) > 0,
		CreatedAt:   state.createdAt,
	}, true
}

// Remove deletes id's entry, if present.
func (t *Tracker) Remove(id SessionId) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Clear removes every tracked session.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[SessionId]*State)
	t.order = nil
}

// Size returns the current live-session count.
func (t *Tracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
