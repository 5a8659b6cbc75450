// Package templates defines the immutable per-browser ClientHello
// description the rest of the pipeline randomizes around: cipher-suite list,
// extension order, GREASE pattern, padding distribution, supported
// curves/signature schemes, ALPN list, key-share groups.
//
// Grounded on the teacher's internal/tls/presets.go (a browser-name-to-preset
// switch) and internal/tls/fingerprint.go (per-extension construction),
// generalized from "pick one of a handful of utls built-ins" to "describe the
// shape of a ClientHello as data".
package templates

import (
	"github.com/hashicorp/go-multierror"

	"custls"
	"custls/extensions"
	"custls/internal/h2fp"
)

// ExtensionGroup classifies an extension for the randomization engine's
// group-constrained shuffle (spec §4.3.1).
type ExtensionGroup int

const (
	GroupCritical ExtensionGroup = iota
	GroupStandard
	GroupOptional
)

// GreaseValues is the canonical pool of 16 GREASE codepoints (RFC 8701):
// 0x?A?A with identical high nibbles on both bytes.
var GreaseValues = []uint16{
	0x0a0a, 0x1a1a, 0x2a2a, 0x3a3a,
	0x4a4a, 0x5a5a, 0x6a6a, 0x7a7a,
	0x8a8a, 0x9a9a, 0xaaaa, 0xbaba,
	0xcaca, 0xdada, 0xeaea, 0xfafa,
}

// IsGrease reports whether value matches the GREASE codepoint mask.
func IsGrease(value uint32) bool {
	b0 := byte(value >> 8)
	b1 := byte(value)
	return b0&0x0f == 0x0a && b1&0x0f == 0x0a && b0>>4 == b1>>4
}

// GreasePattern describes how and where a template injects GREASE values
// into its cipher and extension lists.
type GreasePattern struct {
	CipherProbability    float64
	ExtensionProbability float64
	// CipherPositions and ExtensionPositions are normalized offsets in [0,1]
	// a template prefers GREASE insertion at (e.g. Chrome's front-third bias).
	CipherPositions    []float64
	ExtensionPositions []float64
	// Values is the pool this template draws from (defaults to GreaseValues).
	Values []uint16
}

// PMFEntry is one (length, probability) pair of a padding PMF.
type PMFEntry struct {
	Len int
	P   float64
}

// PaddingDistribution is a discrete PMF over padding lengths plus bounds and
// a power-of-2 snapping bias.
type PaddingDistribution struct {
	PMF          []PMFEntry
	Min          int
	Max          int
	PowerOf2Bias float64
}

// NaturalnessFilter rejects extension combinations no real browser would
// emit: blacklisted co-occurrences, whitelist-implies-whitelist groups, and
// extension dependency requirements.
type NaturalnessFilter struct {
	Blacklist     [][]extensions.ID
	Whitelist     [][]extensions.ID
	DependencyMap map[extensions.ID][]extensions.ID
}

func containsID(set []extensions.ID, id extensions.ID) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func presentSet(exts []extensions.ID) map[extensions.ID]bool {
	m := make(map[extensions.ID]bool, len(exts))
	for _, e := range exts {
		m[e] = true
	}
	return m
}

// IsNatural is a pure predicate: false if any blacklist set is a subset of
// exts, or any whitelist set is partially-but-not-fully present, or any
// dependency key is present without its required extensions.
func (f NaturalnessFilter) IsNatural(exts []extensions.ID) bool {
	present := presentSet(exts)

	for _, forbidden := range f.Blacklist {
		if len(forbidden) == 0 {
			continue
		}
		allPresent := true
		for _, id := range forbidden {
			if !present[id] {
				allPresent = false
				break
			}
		}
		if allPresent {
			return false
		}
	}

	for _, group := range f.Whitelist {
		anyPresent := false
		allPresent := true
		for _, id := range group {
			if present[id] {
				anyPresent = true
			} else {
				allPresent = false
			}
		}
		if anyPresent && !allPresent {
			return false
		}
	}

	for key, required := range f.DependencyMap {
		if !present[key] {
			continue
		}
		for _, req := range required {
			if !present[req] {
				return false
			}
		}
	}

	return true
}

// TemplateData is the immutable browser description. Construct once (via the
// Chrome130/Firefox135/Safari17/Edge130 constructors or a custom literal)
// and share read-only across goroutines.
type TemplateData struct {
	Name                string
	CipherSuites        []uint16
	ExtensionOrder      []extensions.ID
	ExtensionGroups     map[extensions.ID]ExtensionGroup
	SupportedGroups     []uint16
	KeyShareGroups      []uint16
	SignatureAlgorithms []uint16
	ALPN                []string
	Grease              GreasePattern
	Padding             PaddingDistribution
	Filter              NaturalnessFilter

	// H2Profile carries this browser's HTTP/2 SETTINGS/priority/pseudo-header
	// shape alongside the TLS one. Per spec.md's non-goal wording, the data
	// lives here; emitting it onto a real HTTP/2 connection is the caller's
	// job, not this package's.
	H2Profile h2fp.Profile
}

// GroupOf classifies id using the template's ExtensionGroups, defaulting to
// GroupStandard for extensions the template doesn't explicitly classify.
func (t TemplateData) GroupOf(id extensions.ID) ExtensionGroup {
	if g, ok := t.ExtensionGroups[id]; ok {
		return g
	}
	return GroupStandard
}

func uniqueSet(ids []extensions.ID) map[extensions.ID]int {
	counts := make(map[extensions.ID]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	return counts
}

func containsUint16(set []uint16, v uint16) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

const pmfTolerance = 0.2

// Validate checks every invariant from spec §3, accumulating all violations
// via go-multierror rather than stopping at the first (grounded on
// hashicorp/go-multierror, already a dependency of the corpus's
// banyansecurity-req repo).
func (t TemplateData) Validate() error {
	var merr *multierror.Error
	addf := func(format string, args ...any) {
		merr = multierror.Append(merr, custls.New(custls.TemplateError, format, args...))
	}

	if len(t.CipherSuites) == 0 {
		addf("%s: cipher suite list must be non-empty", t.Name)
	}
	if len(t.ExtensionOrder) == 0 {
		addf("%s: extension order must be non-empty", t.Name)
	}
	for id, count := range uniqueSet(t.ExtensionOrder) {
		if count > 1 {
			addf("%s: extension %d appears %d times in extension order", t.Name, id, count)
		}
	}
	if len(t.SupportedGroups) == 0 {
		addf("%s: supported group list must be non-empty", t.Name)
	}
	if len(t.SignatureAlgorithms) == 0 {
		addf("%s: signature algorithm list must be non-empty", t.Name)
	}
	for _, ks := range t.KeyShareGroups {
		if !containsUint16(t.SupportedGroups, ks) {
			addf("%s: key share group %d is not in supported groups", t.Name, ks)
		}
	}

	if t.Padding.Min > t.Padding.Max {
		addf("%s: padding min (%d) > padding max (%d)", t.Name, t.Padding.Min, t.Padding.Max)
	}
	sumP := 0.0
	for _, e := range t.Padding.PMF {
		if e.Len < t.Padding.Min || e.Len > t.Padding.Max {
			addf("%s: padding PMF entry length %d outside [%d,%d]", t.Name, e.Len, t.Padding.Min, t.Padding.Max)
		}
		sumP += e.P
	}
	if len(t.Padding.PMF) > 0 {
		if diff := sumP - 1.0; diff < -pmfTolerance || diff > pmfTolerance {
			addf("%s: padding PMF probabilities sum to %.4f, expected ~1.0 (tolerance %.2f)", t.Name, sumP, pmfTolerance)
		}
	}

	if t.Grease.CipherProbability < 0 || t.Grease.CipherProbability > 1 {
		addf("%s: grease cipher probability %.4f out of [0,1]", t.Name, t.Grease.CipherProbability)
	}
	if t.Grease.ExtensionProbability < 0 || t.Grease.ExtensionProbability > 1 {
		addf("%s: grease extension probability %.4f out of [0,1]", t.Name, t.Grease.ExtensionProbability)
	}
	for _, p := range append(append([]float64{}, t.Grease.CipherPositions...), t.Grease.ExtensionPositions...) {
		if p < 0 || p > 1 {
			addf("%s: grease position %.4f out of [0,1]", t.Name, p)
		}
	}
	values := t.Grease.Values
	if len(values) == 0 {
		values = GreaseValues
	}
	for _, v := range values {
		if !IsGrease(uint32(v)) {
			addf("%s: grease value 0x%04x does not match the 0x?A?A mask", t.Name, v)
		}
	}

	if merr.ErrorOrNil() == nil {
		return nil
	}
	return custls.Wrap(custls.TemplateError, merr, "%s: %d invariant violation(s)", t.Name, len(merr.Errors))
}
