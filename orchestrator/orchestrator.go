// Package orchestrator implements the customizer named in spec component 11
// (§4.7): the four-phase hook implementation that ties together a resolved
// template, the randomization engine, the per-target cache and the session
// tracker into the single object a host TLS stack drives during ClientHello
// construction.
//
// Grounded on the teacher's internal/httpclient/client.go Client struct,
// which held its own mutex-guarded sub-trackers (timingTracker, connLog) and
// exposed a phased request lifecycle; DefaultCustomizer plays the analogous
// role here, generalized from one HTTP request's lifecycle to the TLS
// handshake's four-phase hook contract.
package orchestrator

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"custls"
	"custls/extensions"
	"custls/fingerprint"
	"custls/fpcache"
	"custls/hooks"
	"custls/jitter"
	"custls/randomizer"
	"custls/session"
	"custls/templates"
)

// Target identifies the peer a connection is being made to, forwarded by the
// host at construction time (or resolved from ConfigParams).
type Target = fpcache.TargetKey

// DefaultCustomizer implements hooks.Customizer per §4.7. Construct with New;
// the zero value is not usable. Safe for concurrent use across many
// connections: the fixed lock order from §5 (RNG -> cache -> tracker) is
// enforced simply by never holding more than one of engineMu/cache's/
// tracker's internal locks at a time from within a single phase.
type DefaultCustomizer struct {
	config custls.Config
	target atomic.Pointer[Target]

	engineMu sync.Mutex
	engine   *randomizer.Engine

	cache   *fpcache.Cache
	tracker *session.Tracker
	jit     *jitter.Jitter

	counter uint64

	rotationList []custls.TemplateRef

	active   atomic.Pointer[templates.TemplateData]
	working  atomic.Pointer[custls.ClientHelloConfig]
	sessID   session.SessionId
	logger   *zap.Logger
	metrics  *metrics
	lastWire []byte

	lastJA3     string
	lastJA3Hash string
}

// Option configures optional ambient collaborators on construction.
type Option func(*DefaultCustomizer)

// WithLogger attaches structured logging (go.uber.org/zap) to the
// orchestrator. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(d *DefaultCustomizer) { d.logger = logger }
}

// WithMetricsRegisterer attaches prometheus counters under the given
// registerer. Omit to run without metrics.
func WithMetricsRegisterer(registerer prometheus.Registerer) Option {
	return func(d *DefaultCustomizer) { d.metrics = newMetrics(registerer) }
}

// New builds a DefaultCustomizer from a resolved Config and a target. seed1
// and seed2 pin the randomization engine and jitter RNGs (math/rand/v2 PCG)
// so tests can reproduce a run exactly.
func New(config custls.Config, target Target, seed1, seed2 uint64, opts ...Option) (*DefaultCustomizer, error) {
	d := &DefaultCustomizer{
		config: config,
		engine: randomizer.New(config.RandomizationLevel(), seed1, seed2),
		sessID: session.NewID(),
	}
	d.target.Store(&target)

	if config.CacheEnabled() {
		d.cache = fpcache.New(config.MaxCacheSize())
		d.tracker = session.New(config.MaxCacheSize())
	}

	d.rotationList = config.RotationTemplates()
	if len(d.rotationList) == 0 {
		d.rotationList = []custls.TemplateRef{
			custls.TemplateChrome130, custls.TemplateFirefox135,
			custls.TemplateSafari17, custls.TemplateEdge130,
		}
	}

	if jc, ok := config.TimingJitter(); ok {
		j, err := jitter.New(jc, seed1^0x5a5a5a5a, seed2^0xa5a5a5a5)
		if err != nil {
			return nil, err
		}
		d.jit = j
	}

	for _, opt := range opts {
		opt(d)
	}

	if config.Template() != custls.TemplateNone {
		if tpl, ok := templates.ByName(string(config.Template())); ok {
			d.active.Store(&tpl)
		}
	}

	return d, nil
}

func (d *DefaultCustomizer) log() *zap.Logger {
	if d.logger == nil {
		return zap.NewNop()
	}
	return d.logger
}

var _ hooks.Customizer = (*DefaultCustomizer)(nil)

// LastFingerprint returns the JA3 string and hash computed for the most
// recently realized ClientHelloConfig (set at the end of phase 3, §4.7), or
// ("", "") if no connection has completed phase 3 yet.
func (d *DefaultCustomizer) LastFingerprint() (string, string) {
	return d.lastJA3, d.lastJA3Hash
}

// SessionID returns this customizer's session tracker key (§4.5), so a host
// can correlate a real TLS session with the tracker entries RecordSession
// (phase 3) and the Session* wrapper methods below operate on.
func (d *DefaultCustomizer) SessionID() session.SessionId {
	return d.sessID
}

// GetSessionConfig returns the baseline ClientHelloConfig recorded for this
// customizer's session (§3, property P16: stable across a session's
// resumption lifecycle).
func (d *DefaultCustomizer) GetSessionConfig() (custls.ClientHelloConfig, bool) {
	if d.tracker == nil {
		return custls.ClientHelloConfig{}, false
	}
	return d.tracker.GetConfig(d.sessID)
}

// MarkSessionEstablished records that this customizer's session completed its
// handshake (§4.5), driven by the host once it knows the outcome.
func (d *DefaultCustomizer) MarkSessionEstablished() {
	if d.tracker == nil {
		return
	}
	d.tracker.MarkEstablished(d.sessID)
}

// RecordSessionTicket stores a session ticket for later resumption (§4.5).
func (d *DefaultCustomizer) RecordSessionTicket(ticket []byte) {
	if d.tracker == nil {
		return
	}
	d.tracker.RecordTicket(d.sessID, ticket)
}

// RecordSessionResumption increments this session's resume count (§4.5,
// property P14's monotonic-increment requirement), driven by the host each
// time a resumption using this session's ticket succeeds.
func (d *DefaultCustomizer) RecordSessionResumption() {
	if d.tracker == nil {
		return
	}
	d.tracker.RecordResumption(d.sessID)
}

// currentTarget returns the target this customizer is currently resolving
// for. OnConfigResolve updates it from ConfigParams when the host supplies a
// Host, so one customizer can be driven across many distinct targets over
// its lifetime instead of being pinned to the one passed to New.
func (d *DefaultCustomizer) currentTarget() Target {
	if p := d.target.Load(); p != nil {
		return *p
	}
	return Target{}
}

// resolvedTemplate returns the currently active template, if any.
func (d *DefaultCustomizer) resolvedTemplate() (templates.TemplateData, bool) {
	p := d.active.Load()
	if p == nil {
		return templates.TemplateData{}, false
	}
	return *p, true
}

func extensionIDs(ids []uint16) []extensions.ID {
	out := make([]extensions.ID, len(ids))
	for i, v := range ids {
		out[i] = extensions.ID(v)
	}
	return out
}

func uint16s(ids []extensions.ID) []uint16 {
	out := make([]uint16, len(ids))
	for i, v := range ids {
		out[i] = uint16(v)
	}
	return out
}
