// Package h2fp is the HTTP/2 SETTINGS & priority encoder named in spec
// component 9. It reuses golang.org/x/net/http2's own Setting and
// PriorityParam wire vocabulary rather than reinventing it, adapted from the
// teacher's hand-rolled internal/http2/settings.go (which had redeclared the
// same six SETTINGS identifiers the x/net/http2 package already exports) and
// internal/http2/akamai.go (Akamai-format fingerprint string parsing).
//
// HTTP/2 pseudo-header emission itself stays the caller's job (spec §1); this
// package only carries the data a template associates with a browser's H2
// behavior so an orchestrator can hand it to whatever transport the host
// uses.
package h2fp

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/http2"
)

// Profile is the HTTP/2-level fingerprint companion to a TLS template: the
// SETTINGS frame a browser sends, its connection-level WINDOW_UPDATE
// increment, and its stream-priority defaults. Data lives here; emission is
// the caller's job, per spec §1.
type Profile struct {
	Settings              []http2.Setting
	WindowUpdateIncrement uint32
	PriorityFrames        []PriorityFrame
	HeaderPriority        http2.PriorityParam
	PseudoHeaderOrder     []string
}

// PriorityFrame pairs a stream ID with its priority parameters, matching
// golang.org/x/net/http2's PriorityFrame shape closely enough to build one
// directly (grounded on banyansecurity-req/client_impersonate.go's
// firefoxPriorityFrames literal).
type PriorityFrame struct {
	StreamID uint32
	http2.PriorityParam
}

// ParseAkamai parses the Akamai HTTP/2 fingerprint text format
// "SETTINGS|WINDOW_UPDATE|PRIORITY|HEADER_ORDER", e.g.
// "1:65536;2:0;4:6291456;6:262144|15663105|0|m,a,s,p", grounded on the
// teacher's internal/http2/akamai.go ParseAkamaiText.
func ParseAkamai(text string) (Profile, error) {
	if text == "" {
		return Profile{}, fmt.Errorf("h2fp: empty akamai fingerprint")
	}
	parts := strings.Split(text, "|")

	var profile Profile
	if parts[0] != "" {
		for _, pair := range strings.Split(parts[0], ";") {
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			id, err := strconv.ParseUint(kv[0], 10, 16)
			if err != nil {
				continue
			}
			val, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil {
				continue
			}
			profile.Settings = append(profile.Settings, http2.Setting{
				ID:  http2.SettingID(id),
				Val: uint32(val),
			})
		}
	}

	if len(parts) > 1 && parts[1] != "" {
		if val, err := strconv.ParseUint(parts[1], 10, 32); err == nil {
			profile.WindowUpdateIncrement = uint32(val)
		}
	}

	if len(parts) > 2 && parts[2] != "" && parts[2] != "0" {
		for _, entry := range strings.Split(parts[2], ",") {
			fields := strings.Split(entry, ":")
			if len(fields) != 4 {
				continue
			}
			streamID, err1 := strconv.ParseUint(fields[0], 10, 32)
			exclusive, err2 := strconv.ParseUint(fields[1], 10, 8)
			dep, err3 := strconv.ParseUint(fields[2], 10, 32)
			weight, err4 := strconv.ParseUint(fields[3], 10, 8)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				continue
			}
			profile.PriorityFrames = append(profile.PriorityFrames, PriorityFrame{
				StreamID: uint32(streamID),
				PriorityParam: http2.PriorityParam{
					StreamDep: uint32(dep),
					Exclusive: exclusive == 1,
					Weight:    uint8(weight),
				},
			})
		}
		if len(profile.PriorityFrames) > 0 {
			profile.HeaderPriority = profile.PriorityFrames[0].PriorityParam
		}
	}

	if len(parts) > 3 && parts[3] != "" {
		letterMap := map[string]string{"m": ":method", "a": ":authority", "s": ":scheme", "p": ":path"}
		for _, letter := range strings.Split(parts[3], ",") {
			if header, ok := letterMap[strings.TrimSpace(letter)]; ok {
				profile.PseudoHeaderOrder = append(profile.PseudoHeaderOrder, header)
			}
		}
	}

	return profile, nil
}

// MustParseAkamai is ParseAkamai for compile-time-known-good literals (the
// four built-in templates' fingerprint strings), mirroring regexp.MustCompile.
func MustParseAkamai(text string) Profile {
	profile, err := ParseAkamai(text)
	if err != nil {
		panic("h2fp: " + err.Error())
	}
	return profile
}
