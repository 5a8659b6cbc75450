// Package session implements the session-state tracker named in spec
// component 6: a bounded, size-evicted map from SessionId to SessionState
// that pins configuration across a session's initial handshake and any
// resumptions.
//
// Distinct from fpcache.Cache (which is per-peer and lives across sessions),
// the tracker is per-session. It is grounded on the same mutex-guarded-struct
// pattern as fpcache (itself grounded on the teacher's
// internal/httpclient/timing.go timingTracker), generalized here to a bounded
// map with oldest-first eviction instead of a single record.
package session

import (
	"github.com/google/uuid"
)

// SessionId is an opaque session identifier.
type SessionId string

// NewID mints a fresh SessionId backed by a random UUID (google/uuid, already
// a dependency pulled in for this purpose).
func NewID() SessionId {
	return SessionId(uuid.NewString())
}
