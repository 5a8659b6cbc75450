// Package security implements the downgrade canary validator named in spec
// component 7 (§4.6): RFC 8446 §4.1.3's ServerHello.random tail check that
// detects an attacker-forced downgrade from TLS 1.3.
//
// Grounded on the teacher's internal/tls/fingerprint.go-style small pure
// validation functions operating on fixed-size byte arrays; this is the one
// component with an exact byte-for-byte contract, so unlike the rest of the
// CORE it has no randomization or template dependency at all.
package security

import (
	"bytes"

	"custls"
)

// Version is a TLS protocol version tag. The CORE only needs to distinguish
// the four versions the downgrade canary cares about.
type Version int

const (
	VersionTLS10 Version = iota
	VersionTLS11
	VersionTLS12
	VersionTLS13
)

// TLS12DowngradeCanary is the 8-byte tail RFC 8446 §4.1.3 requires a
// TLS-1.3-capable server to write into ServerHello.random when it
// deliberately negotiates TLS 1.2.
var TLS12DowngradeCanary = [8]byte{0x44, 0x4F, 0x57, 0x4E, 0x47, 0x52, 0x44, 0x01}

// TLS11DowngradeCanary is the equivalent tail for a deliberate downgrade to
// TLS 1.1 or TLS 1.0.
var TLS11DowngradeCanary = [8]byte{0x44, 0x4F, 0x57, 0x4E, 0x47, 0x52, 0x44, 0x00}

// ValidateDowngradeProtection implements §4.6 exactly:
//   - If expected is not TLS 1.3, return ok (nil).
//   - If serverRandom is not 32 bytes, fail with a ValidationError ("peer misbehaved").
//   - If negotiated is TLS 1.2 and the last 8 bytes equal TLS12DowngradeCanary, fail with DowngradeDetected.
//   - If negotiated is TLS 1.1 or TLS 1.0 and the last 8 bytes equal TLS11DowngradeCanary, fail with DowngradeDetected.
//   - Else ok.
func ValidateDowngradeProtection(serverRandom []byte, expected, negotiated Version) error {
	if expected != VersionTLS13 {
		return nil
	}
	if len(serverRandom) != 32 {
		return custls.New(custls.ValidationError, "peer misbehaved: server random must be 32 bytes, got %d", len(serverRandom))
	}

	tail := serverRandom[24:]
	switch negotiated {
	case VersionTLS12:
		if bytes.Equal(tail, TLS12DowngradeCanary[:]) {
			return custls.New(custls.DowngradeDetected, "downgrade detected: TLS 1.3 capable server negotiated TLS 1.2 with downgrade canary present")
		}
	case VersionTLS11, VersionTLS10:
		if bytes.Equal(tail, TLS11DowngradeCanary[:]) {
			return custls.New(custls.DowngradeDetected, "downgrade detected: TLS 1.3 capable server negotiated TLS 1.1/1.0 with downgrade canary present")
		}
	}
	return nil
}
