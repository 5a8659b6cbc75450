// Package fpcache implements the per-target fingerprint cache named in spec
// component 5: a bounded map from TargetKey to FingerprintEntry with
// reputation-ordered eviction and anti-repetition FIFO queues.
//
// Grounded on the teacher's internal/httpclient/timing.go timingTracker
// pattern (a mutex-guarded struct with lock/unlock bracketing every field
// read and write) generalized from a single timing record to a bounded,
// multi-entry map; per spec §4.4/§5 the cache itself is not internally
// synchronized and the orchestrator wraps it in a mutex, so Cache below
// carries its own mutex purely as the "orchestrator wrapper" in
// miniature, matching the teacher's convention of colocating the lock with
// the data it guards.
package fpcache

import (
	"sort"
	"sync"
	"time"

	"custls"
)

// TargetKey identifies the peer a fingerprint was used against. It is a
// plain comparable struct so it can be used directly as a map key.
type TargetKey struct {
	Host string
	Port uint16
}

const recentQueueSize = 10

// FingerprintEntry owns one ClientHelloConfig plus its usage history. Reads
// from the cache always return copies (StatsFor a Stats snapshot,
// GetWorkingFingerprint a clone of the config, the Recent* methods copies of
// the queues) so callers cannot mutate cache-owned state by reference.
type FingerprintEntry struct {
	Config       custls.ClientHelloConfig
	SuccessCount int
	FailureCount int
	Reputation   float64
	LastUsed     time.Time

	recentGrease  []uint16
	recentPadding []int
}

// Stats is the read-only snapshot returned to callers.
type Stats struct {
	SuccessCount int
	FailureCount int
	Reputation   float64
	LastUsed     time.Time
}

func recomputeReputation(successes, failures int) float64 {
	total := successes + failures
	if total == 0 {
		return 0.5
	}
	return float64(successes) / float64(total)
}

func pushBoundedUint16(queue []uint16, v uint16) []uint16 {
	queue = append(queue, v)
	if len(queue) > recentQueueSize {
		queue = queue[len(queue)-recentQueueSize:]
	}
	return queue
}

func pushBoundedInt(queue []int, v int) []int {
	queue = append(queue, v)
	if len(queue) > recentQueueSize {
		queue = queue[len(queue)-recentQueueSize:]
	}
	return queue
}

// Cache is the bounded TargetKey->FingerprintEntry map. Zero value is not
// usable; construct with New.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	entries map[TargetKey]*FingerprintEntry
}

// New builds a Cache bounded to maxSize entries.
func New(maxSize int) *Cache {
	return &Cache{
		maxSize: maxSize,
		entries: make(map[TargetKey]*FingerprintEntry),
	}
}

// RecordResult implements the §4.4 insertion protocol: evict first if the
// target is new and the cache is full, then create-or-update the entry.
func (c *Cache) RecordResult(target TargetKey, config custls.ClientHelloConfig, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entryLocked(target)

	if success {
		entry.SuccessCount++
	} else {
		entry.FailureCount++
	}
	entry.Reputation = recomputeReputation(entry.SuccessCount, entry.FailureCount)
	entry.LastUsed = time.Now()
	entry.Config = config.Clone()
}

// evictLocked must be called with c.mu held. It removes the lowest-reputation
// entry, breaking ties by the oldest LastUsed, per §4.4.
func (c *Cache) evictLocked() {
	var victim TargetKey
	found := false
	for key, entry := range c.entries {
		if !found {
			victim, found = key, true
			continue
		}
		current := c.entries[victim]
		if entry.Reputation < current.Reputation ||
			(entry.Reputation == current.Reputation && entry.LastUsed.Before(current.LastUsed)) {
			victim = key
		}
	}
	if found {
		delete(c.entries, victim)
	}
}

// GetWorkingFingerprint returns a clone of the stored config for target, if
// any, satisfying property P7 (independent clones on repeated reads).
func (c *Cache) GetWorkingFingerprint(target TargetKey) (custls.ClientHelloConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[target]
	if !ok {
		return custls.ClientHelloConfig{}, false
	}
	return entry.Config.Clone(), true
}

// Invalidate removes target's entry entirely.
func (c *Cache) Invalidate(target TargetKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, target)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[TargetKey]*FingerprintEntry)
}

// Size returns the current entry count.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RecentGrease returns a copy of the bounded recent-GREASE queue for target.
func (c *Cache) RecentGrease(target TargetKey) []uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[target]
	if !ok {
		return nil
	}
	return append([]uint16(nil), entry.recentGrease...)
}

// RecentPadding returns a copy of the bounded recent-padding queue for target.
func (c *Cache) RecentPadding(target TargetKey) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[target]
	if !ok {
		return nil
	}
	return append([]int(nil), entry.recentPadding...)
}

// TrackGrease pushes value onto target's recent-GREASE FIFO, dropping the
// oldest entry past size 10. Creates the entry if absent.
func (c *Cache) TrackGrease(target TargetKey, value uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := c.entryLocked(target)
	entry.recentGrease = pushBoundedUint16(entry.recentGrease, value)
}

// TrackPadding pushes length onto target's recent-padding FIFO.
func (c *Cache) TrackPadding(target TargetKey, length int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := c.entryLocked(target)
	entry.recentPadding = pushBoundedInt(entry.recentPadding, length)
}

// entryLocked must be called with c.mu held; it gets-or-creates target's
// entry, evicting the lowest-reputation entry first if target is new and the
// cache is already at maxSize. Every insertion path (RecordResult,
// TrackGrease, TrackPadding) goes through this so |entries| <= maxSize holds
// unconditionally, per spec §4.4/P8 -- not just for RecordResult callers.
func (c *Cache) entryLocked(target TargetKey) *FingerprintEntry {
	entry, ok := c.entries[target]
	if ok {
		return entry
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}
	entry = &FingerprintEntry{}
	c.entries[target] = entry
	return entry
}

// StatsFor returns a snapshot of target's counters, if present.
func (c *Cache) StatsFor(target TargetKey) (Stats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[target]
	if !ok {
		return Stats{}, false
	}
	return Stats{
		SuccessCount: entry.SuccessCount,
		FailureCount: entry.FailureCount,
		Reputation:   entry.Reputation,
		LastUsed:     entry.LastUsed,
	}, true
}

// Targets returns the cache's current keys sorted by Host then Port, useful
// for tests and diagnostics.
func (c *Cache) Targets() []TargetKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TargetKey, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Host != out[j].Host {
			return out[i].Host < out[j].Host
		}
		return out[i].Port < out[j].Port
	})
	return out
}
