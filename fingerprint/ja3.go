// Package fingerprint computes JA3 strings from a realized
// custls.ClientHelloConfig. Per the glossary, this system *produces*
// fingerprints; it does not classify them — the hash is an observability
// aid for comparing two realized configs, not a detector.
//
// Grounded on the teacher's internal/tls/ja3.go (CalculateJA3/ParseJA3Text),
// adapted from "read a live utls.UConn's handshake state" — out of CORE
// scope per spec §1/§6, since the CORE never performs network I/O — to "read
// our own in-memory ClientHelloConfig", and from "parse untrusted JA3 text"
// to "render a JA3 string deterministically from data this package already
// owns".
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"custls"
	"custls/templates"
)

// JA3 computes the classic JA3 string and its MD5 hash for cfg:
// "SSLVersion,Ciphers,Extensions,EllipticCurves,EllipticCurvePointFormats".
// GREASE values are excluded from every field per the JA3 specification.
func JA3(cfg custls.ClientHelloConfig, tlsVersion uint16) (string, string) {
	cipherStr := joinNonGrease(cfg.CipherSuites)
	extStr := joinNonGrease(cfg.ExtensionOrder)
	curveStr := joinNonGrease(cfg.SupportedGroups)

	ja3String := fmt.Sprintf("%d,%s,%s,%s,%s",
		tlsVersion, cipherStr, extStr, curveStr, "0",
	)
	hash := md5.Sum([]byte(ja3String))
	return ja3String, hex.EncodeToString(hash[:])
}

func joinNonGrease(values []uint16) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if templates.IsGrease(uint32(v)) {
			continue
		}
		parts = append(parts, strconv.Itoa(int(v)))
	}
	return strings.Join(parts, "-")
}
