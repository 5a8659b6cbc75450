// Package custls grafts browser-level TLS ClientHello fingerprint simulation
// onto a host TLS 1.2/1.3 client implementation. It produces ClientHello byte
// sequences that are statistically indistinguishable from mainstream browser
// traffic without weakening any host security guarantee.
//
// The package is deliberately host-agnostic: it never imports a concrete TLS
// stack. A host wires it in through the four-phase contract in package hooks.
package custls

import (
	"time"

	"github.com/hashicorp/go-multierror"
)

// RandomizationLevel controls how aggressively the randomization engine
// perturbs a ClientHello away from its template's default shape.
type RandomizationLevel int

const (
	// LevelNone applies no randomization; the template is used exactly.
	LevelNone RandomizationLevel = iota
	// LevelLight applies small browser-style perturbations.
	LevelLight
	// LevelMedium applies moderate variation within browser norms.
	LevelMedium
	// LevelHigh applies maximum variation within naturalness constraints.
	LevelHigh
)

func (l RandomizationLevel) String() string {
	switch l {
	case LevelNone:
		return "None"
	case LevelLight:
		return "Light"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// RotationPolicy selects how an orchestrator picks a template across a
// sequence of connections.
type RotationPolicy int

const (
	// RotationNone uses the same template for every connection.
	RotationNone RotationPolicy = iota
	// RotationRoundRobin cycles deterministically through the template list.
	RotationRoundRobin
	// RotationRandom picks (connection counter * a large odd constant) modulo
	// the list length: a deterministic, fixed-stride walk over the list.
	RotationRandom
	// RotationWeightedRandom prefers more common browsers (Chrome 40%,
	// Firefox 25%, Safari 20%, Edge 15%).
	RotationWeightedRandom
)

func (p RotationPolicy) String() string {
	switch p {
	case RotationNone:
		return "None"
	case RotationRoundRobin:
		return "RoundRobin"
	case RotationRandom:
		return "Random"
	case RotationWeightedRandom:
		return "WeightedRandom"
	default:
		return "Unknown"
	}
}

// JitterConfig configures the optional sub-millisecond delay applied at hook
// boundaries (spec §4.9). Validated at construction: Min <= Max, and
// Probability in [0,1].
type JitterConfig struct {
	Min         time.Duration
	Max         time.Duration
	Probability float64
}

func (j JitterConfig) validate() error {
	var merr *multierror.Error
	if j.Min > j.Max {
		merr = multierror.Append(merr, New(ValidationError, "timing jitter: min (%s) > max (%s)", j.Min, j.Max))
	}
	if j.Probability < 0 || j.Probability > 1 {
		merr = multierror.Append(merr, New(ValidationError, "timing jitter: probability %v out of [0,1]", j.Probability))
	}
	return merr.ErrorOrNil()
}

// TemplateRef names a built-in browser template by tag, used by Config and by
// rotation policies. The zero value refers to no template ("pass-through").
type TemplateRef string

const (
	// TemplateNone means no template is active ("pass-through").
	TemplateNone TemplateRef = ""
	TemplateChrome130  TemplateRef = "chrome_130"
	TemplateFirefox135 TemplateRef = "firefox_135"
	TemplateSafari17   TemplateRef = "safari_17"
	TemplateEdge130    TemplateRef = "edge_130"
)

// Config is the immutable, user-facing configuration for a custls
// orchestrator. Build one through NewBuilder(); the zero value is invalid
// (use Default() for the documented defaults).
type Config struct {
	template           TemplateRef
	randomizationLevel RandomizationLevel
	enableCache        bool
	maxCacheSize       int
	rotationPolicy     RotationPolicy
	rotationTemplates  []TemplateRef
	timingJitter       *JitterConfig
}

// Default returns the documented default configuration: no template,
// Light randomization, cache enabled with 1000 entries, no rotation.
func Default() Config {
	return Config{
		template:           TemplateNone,
		randomizationLevel: LevelLight,
		enableCache:        true,
		maxCacheSize:        1000,
		rotationPolicy:     RotationNone,
	}
}

func (c Config) Template() TemplateRef                { return c.template }
func (c Config) RandomizationLevel() RandomizationLevel { return c.randomizationLevel }
func (c Config) CacheEnabled() bool                   { return c.enableCache }
func (c Config) MaxCacheSize() int                    { return c.maxCacheSize }
func (c Config) RotationPolicy() RotationPolicy       { return c.rotationPolicy }
func (c Config) RotationTemplates() []TemplateRef {
	out := make([]TemplateRef, len(c.rotationTemplates))
	copy(out, c.rotationTemplates)
	return out
}
func (c Config) TimingJitter() (JitterConfig, bool) {
	if c.timingJitter == nil {
		return JitterConfig{}, false
	}
	return *c.timingJitter, true
}

// Builder is the fluent builder for Config, mirroring the teacher's
// constructor-then-configure style (internal/httpclient.New) generalized to
// chained setters.
type Builder struct {
	cfg Config
}

// NewBuilder starts a builder from the documented defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: Default()}
}

func (b *Builder) WithTemplate(t TemplateRef) *Builder {
	b.cfg.template = t
	return b
}

func (b *Builder) WithRandomizationLevel(l RandomizationLevel) *Builder {
	b.cfg.randomizationLevel = l
	return b
}

func (b *Builder) WithCache(enable bool) *Builder {
	b.cfg.enableCache = enable
	return b
}

func (b *Builder) WithMaxCacheSize(size int) *Builder {
	b.cfg.maxCacheSize = size
	return b
}

func (b *Builder) WithRotationPolicy(p RotationPolicy) *Builder {
	b.cfg.rotationPolicy = p
	return b
}

func (b *Builder) WithRotationTemplates(templates ...TemplateRef) *Builder {
	b.cfg.rotationTemplates = append([]TemplateRef(nil), templates...)
	return b
}

func (b *Builder) WithTimingJitter(j JitterConfig) *Builder {
	b.cfg.timingJitter = &j
	return b
}

// Build validates and returns the immutable Config. All violated
// preconditions are reported together via go-multierror rather than only the
// first one encountered.
func (b *Builder) Build() (Config, error) {
	var merr *multierror.Error
	if b.cfg.maxCacheSize < 0 {
		merr = multierror.Append(merr, New(ValidationError, "max_cache_size must be >= 0, got %d", b.cfg.maxCacheSize))
	}
	if b.cfg.timingJitter != nil {
		if err := b.cfg.timingJitter.validate(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return Config{}, Wrap(ValidationError, err, "invalid custls config")
	}
	return b.cfg, nil
}
