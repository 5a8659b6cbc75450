// Package extensions implements wire encode/decode for the TLS extensions the
// host TLS stack lacks: ApplicationSettings, DelegatedCredential,
// CompressCertificate, Padding, StatusRequest and SignedCertificateTimestamp.
//
// Every type here is a pure value with Encode/Decode pairs operating on wire
// bytes; none of them touch the network or a crypto provider, grounded on the
// teacher's small-pure-value-type convention in internal/tls/ja3.go's
// ParsedJA3 and internal/tls/fingerprint.go's per-extension construction.
package extensions

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"custls"
)

// ID is a TLS extension identifier (the IANA ExtensionType codepoint space).
type ID uint16

// invalidMessage wraps a decode failure in the ExtensionError taxonomy with a
// stable, testable kind string so callers (and tests) can match on it without
// parsing prose.
func invalidMessage(kind string, detail string) error {
	return custls.New(custls.ExtensionError, "invalid message (%s): %s", kind, detail)
}

const (
	kindMissingData = "missing data"
	kindOddLength   = "odd length"
	kindTrailing    = "trailing data"
)

// readUint16 reads a big-endian uint16, reporting kindMissingData on EOF.
func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, invalidMessage(kindMissingData, "expected 2-byte length/value")
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func readUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, invalidMessage(kindMissingData, "expected 1-byte length/value")
	}
	return buf[0], nil
}

func readExact(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, invalidMessage(kindMissingData, fmt.Sprintf("expected %d bytes", n))
	}
	return buf, nil
}

// assertDrained reports kindTrailing if r still has unread bytes.
func assertDrained(r *bytes.Reader) error {
	if r.Len() > 0 {
		return invalidMessage(kindTrailing, fmt.Sprintf("%d unexpected trailing byte(s)", r.Len()))
	}
	return nil
}
