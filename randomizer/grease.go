package randomizer

import (
	"custls/extensions"
	"custls/templates"
)

// GreaseInjection is the result of §4.3.2: the ciphers/extensions with GREASE
// values spliced in, plus the values actually injected so the caller can feed
// them into the cache's recent-GREASE queue.
type GreaseInjection struct {
	Ciphers    []uint16
	Extensions []extensions.ID
	Injected   []uint16
}

// InjectGrease implements §4.3.2. recent is the per-target recent-GREASE
// queue from the cache (shared by the cipher and extension injections); it
// may be nil.
func (e *Engine) InjectGrease(ciphers []uint16, exts []extensions.ID, tpl templates.TemplateData, recent []uint16) GreaseInjection {
	result := GreaseInjection{
		Ciphers:    append([]uint16(nil), ciphers...),
		Extensions: append([]extensions.ID(nil), exts...),
	}

	pool := greasePool(tpl.Grease)

	var cipherValue uint16
	cipherInjected := false
	if e.RNG.Float64() < tpl.Grease.CipherProbability {
		cipherValue = e.selectUnusedGrease(pool, recent)
		idx := e.positionIndex(tpl.Grease.CipherPositions, len(result.Ciphers)+1)
		result.Ciphers = insertUint16(result.Ciphers, idx, cipherValue)
		result.Injected = append(result.Injected, cipherValue)
		cipherInjected = true
	}

	if e.RNG.Float64() < tpl.Grease.ExtensionProbability {
		avoid := append([]uint16(nil), recent...)
		if cipherInjected {
			avoid = append(avoid, cipherValue)
		}
		extValue := e.selectUnusedGrease(pool, avoid)
		idx := e.positionIndex(tpl.Grease.ExtensionPositions, len(result.Extensions)+1)
		result.Extensions = insertID(result.Extensions, idx, extensions.ID(extValue))
		result.Injected = append(result.Injected, extValue)
	}

	return result
}

// selectUnusedGrease returns a value from pool not present in recent, falling
// back to a uniform pick from pool if every value has recently been used.
func (e *Engine) selectUnusedGrease(pool []uint16, recent []uint16) uint16 {
	if len(pool) == 0 {
		return 0
	}
	recentSet := make(map[uint16]bool, len(recent))
	for _, v := range recent {
		recentSet[v] = true
	}
	var candidates []uint16
	for _, v := range pool {
		if !recentSet[v] {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}
	return candidates[e.RNG.IntN(len(candidates))]
}

// positionIndex maps a normalized [0,1] position sample onto an insertion
// index into a list of the given length (after insertion).
func (e *Engine) positionIndex(positions []float64, lengthAfterInsert int) int {
	if lengthAfterInsert <= 1 {
		return 0
	}
	var p float64
	if len(positions) == 0 {
		p = e.RNG.Float64()
	} else {
		p = positions[e.RNG.IntN(len(positions))]
	}
	idx := int(p * float64(lengthAfterInsert-1))
	return clamp(idx, 0, lengthAfterInsert-1)
}

func insertUint16(s []uint16, idx int, v uint16) []uint16 {
	out := make([]uint16, 0, len(s)+1)
	out = append(out, s[:idx]...)
	out = append(out, v)
	out = append(out, s[idx:]...)
	return out
}

func insertID(s []extensions.ID, idx int, v extensions.ID) []extensions.ID {
	out := make([]extensions.ID, 0, len(s)+1)
	out = append(out, s[:idx]...)
	out = append(out, v)
	out = append(out, s[idx:]...)
	return out
}
