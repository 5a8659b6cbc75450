// Package randomizer implements the randomization engine named in spec
// component 4: extension shuffling (§4.3.1), GREASE injection (§4.3.2) and
// padding-length sampling (§4.3.3), all driven by a seedable RNG so tests can
// pin determinism.
//
// Grounded on the teacher's internal/tls/fingerprint.go, which built a single
// ClientHello shape from a fixed preset; this package generalizes that into a
// per-connection randomization step layered on top of a template.
package randomizer

import (
	"math/rand/v2"

	"custls"
	"custls/extensions"
	"custls/internal/sampling"
	"custls/templates"
)

// Level mirrors custls.RandomizationLevel; the engine takes it directly
// rather than importing the root package's Config so it stays usable
// standalone (e.g. in tests) without pulling in the builder.
type Level = custls.RandomizationLevel

// Engine holds the randomization level, the RNG, and nothing else — it has no
// mutex of its own. Per spec §5, the orchestrator owns the single mutex
// guarding the RNG; Engine's methods are not safe for concurrent use on the
// same *rand.Rand without that external lock.
type Engine struct {
	Level Level
	RNG   *rand.Rand
}

// New builds an Engine from a level and a seed pair, using math/rand/v2's PCG
// source (justified in DESIGN.md: no ecosystem PRNG library appears anywhere
// in the corpus, so the stdlib generator is the grounded choice here).
func New(level Level, seed1, seed2 uint64) *Engine {
	return &Engine{Level: level, RNG: rand.New(rand.NewPCG(seed1, seed2))}
}

// adjacentSwapProbability returns the per-step swap probability
// fisherYatesBiased uses for §4.3.1 step 4: Light≈0.15, Medium≈0.4, High≈0.8.
func adjacentSwapProbability(level Level) float64 {
	switch level {
	case custls.LevelLight:
		return 0.15
	case custls.LevelMedium:
		return 0.4
	case custls.LevelHigh:
		return 0.8
	default:
		return 0
	}
}

// pmfSampleProbability returns the §4.3.3 level-dependent probability of
// sampling padding length from the PMF rather than falling through to the
// uniform/power-of-2 path: Light 0.9, Medium 0.7, High 0.5.
func pmfSampleProbability(level Level) float64 {
	switch level {
	case custls.LevelLight:
		return 0.9
	case custls.LevelMedium:
		return 0.7
	case custls.LevelHigh:
		return 0.5
	default:
		return 0
	}
}

func paddingPMF(dist templates.PaddingDistribution) []sampling.Weighted {
	out := make([]sampling.Weighted, 0, len(dist.PMF))
	for _, e := range dist.PMF {
		out = append(out, sampling.Weighted{Value: e.Len, P: e.P})
	}
	return out
}

func greasePool(pattern templates.GreasePattern) []uint16 {
	if len(pattern.Values) > 0 {
		return pattern.Values
	}
	return templates.GreaseValues
}

func isPSK(id extensions.ID) bool {
	return id == extensions.IDPreSharedKey
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
