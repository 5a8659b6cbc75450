package orchestrator

import "custls"

// weightedRotationEntry is one (template, cumulative weight) step of the
// WeightedRandom policy's fixed distribution (§4.7: Chrome 40%, Firefox 25%,
// Safari 20%, Edge 15%).
type weightedRotationEntry struct {
	template custls.TemplateRef
	weight   float64
}

var defaultWeightedDistribution = []weightedRotationEntry{
	{custls.TemplateChrome130, 0.40},
	{custls.TemplateFirefox135, 0.25},
	{custls.TemplateSafari17, 0.20},
	{custls.TemplateEdge130, 0.15},
}

// largeOddConstant is the "large odd constant K" the Random policy multiplies
// the connection counter by (§4.7). The result still steps through the list
// by a fixed stride (K mod len(list)), so every entry is visited once per
// len(list) connections; for list lengths where K mod len(list) is 1 (such as
// 2 or 4) the order is the same as RoundRobin's.
const largeOddConstant = 104729

// selectTemplate implements §4.7 phase 1's rotation selection. counter is the
// zero-based index of this connection (the orchestrator's connection counter
// *before* this call's increment), so the first connection gets list[0]
// under RoundRobin; list is the configured rotation list (already defaulted
// to the four built-ins by the caller if empty). Every policy is a pure
// function of counter; no RNG is consulted.
func selectTemplate(policy custls.RotationPolicy, counter uint64, list []custls.TemplateRef) custls.TemplateRef {
	if len(list) == 0 {
		return custls.TemplateNone
	}

	switch policy {
	case custls.RotationRoundRobin:
		return list[counter%uint64(len(list))]
	case custls.RotationRandom:
		idx := (counter * largeOddConstant) % uint64(len(list))
		return list[idx]
	case custls.RotationWeightedRandom:
		return selectWeighted(counter, list)
	default:
		return custls.TemplateNone
	}
}

// selectWeighted picks from defaultWeightedDistribution when list matches the
// four built-ins (the common case), deterministically from counter: the
// counter is scrambled by largeOddConstant into a point in [0,1), and since
// that constant is coprime to 10000 every block of 10000 consecutive counters
// reproduces the declared weights exactly. Otherwise it falls back to the
// Random policy's counter-derived index over list.
func selectWeighted(counter uint64, list []custls.TemplateRef) custls.TemplateRef {
	if sameTemplateSet(list, defaultWeightedDistribution) {
		target := float64((counter*largeOddConstant)%10000) / 10000.0
		cumulative := 0.0
		for _, entry := range defaultWeightedDistribution {
			cumulative += entry.weight
			if target < cumulative {
				return entry.template
			}
		}
		return defaultWeightedDistribution[len(defaultWeightedDistribution)-1].template
	}
	idx := (counter * largeOddConstant) % uint64(len(list))
	return list[idx]
}

func sameTemplateSet(list []custls.TemplateRef, weighted []weightedRotationEntry) bool {
	if len(list) != len(weighted) {
		return false
	}
	for i, entry := range weighted {
		if list[i] != entry.template {
			return false
		}
	}
	return true
}
