package randomizer

import (
	"custls"
	"custls/internal/sampling"
	"custls/templates"
)

// SamplePaddingLength implements §4.3.3. recent is the per-target
// recent-padding FIFO from the cache.
func (e *Engine) SamplePaddingLength(dist templates.PaddingDistribution, recent []int) int {
	if e.Level == custls.LevelNone {
		if len(dist.PMF) == 0 {
			return dist.Min
		}
		return clamp(dist.PMF[0].Len, dist.Min, dist.Max)
	}

	recentSet := make(map[int]bool, len(recent))
	for _, v := range recent {
		recentSet[v] = true
	}

	pmfSampleProb := pmfSampleProbability(e.Level)
	pmf := paddingPMF(dist)

	var last int
	for attempt := 0; attempt < 5; attempt++ {
		candidate := e.sampleOnce(dist, pmf, pmfSampleProb)
		last = candidate
		if !recentSet[candidate] {
			return candidate
		}
	}
	return clamp(last, dist.Min, dist.Max)
}

func (e *Engine) sampleOnce(dist templates.PaddingDistribution, pmf []sampling.Weighted, pmfSampleProb float64) int {
	if len(pmf) > 0 && e.RNG.Float64() < pmfSampleProb {
		if v, ok := sampling.FromPMF(e.RNG, pmf); ok {
			return clamp(v, dist.Min, dist.Max)
		}
	}
	return clamp(sampling.WithPowerOf2Bias(e.RNG, dist.Min, dist.Max, dist.PowerOf2Bias), dist.Min, dist.Max)
}
