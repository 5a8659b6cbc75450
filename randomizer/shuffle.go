package randomizer

import (
	"custls"
	"custls/extensions"
	"custls/templates"
)

// ShuffleExtensions implements §4.3.1. order is never mutated in place; a new
// slice is always returned so callers retain the template's default order as
// a fallback value.
func (e *Engine) ShuffleExtensions(order []extensions.ID, tpl templates.TemplateData) []extensions.ID {
	if e.Level == custls.LevelNone {
		return append([]extensions.ID(nil), order...)
	}

	var psk extensions.ID
	hasPSK := false
	remainder := make([]extensions.ID, 0, len(order))
	for _, id := range order {
		if isPSK(id) {
			psk = id
			hasPSK = true
			continue
		}
		remainder = append(remainder, id)
	}

	swapProb := adjacentSwapProbability(e.Level)

	for attempt := 0; attempt < 3; attempt++ {
		critical, standard, optional := partition(remainder, tpl)
		e.fisherYatesBiased(critical, swapProb)
		e.fisherYatesBiased(standard, swapProb)
		e.fisherYatesBiased(optional, swapProb)

		candidate := make([]extensions.ID, 0, len(order))
		candidate = append(candidate, critical...)
		candidate = append(candidate, standard...)
		candidate = append(candidate, optional...)
		if hasPSK {
			candidate = append(candidate, psk)
		}

		if tpl.Filter.IsNatural(candidate) {
			return candidate
		}
	}

	return append([]extensions.ID(nil), order...)
}

func partition(ids []extensions.ID, tpl templates.TemplateData) (critical, standard, optional []extensions.ID) {
	for _, id := range ids {
		switch tpl.GroupOf(id) {
		case templates.GroupCritical:
			critical = append(critical, id)
		case templates.GroupOptional:
			optional = append(optional, id)
		default:
			standard = append(standard, id)
		}
	}
	return critical, standard, optional
}

// fisherYatesBiased performs an in-place Fisher-Yates shuffle where each
// transposition is only committed with probability swapProb: walking i from
// the end of the list down, it swaps ids[i] with ids[j] for a uniformly
// chosen j <= i (not necessarily a neighbor) only when the swapProb draw
// succeeds, so a higher level leaves fewer elements in place.
func (e *Engine) fisherYatesBiased(ids []extensions.ID, swapProb float64) {
	n := len(ids)
	if n < 2 || swapProb <= 0 {
		return
	}
	for i := n - 1; i > 0; i-- {
		if e.RNG.Float64() >= swapProb {
			continue
		}
		j := e.RNG.IntN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
