package orchestrator

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"custls"
	"custls/extensions"
	"custls/fingerprint"
	"custls/hooks"
	"custls/templates"
)

// ja3RecordVersion is the legacy record-layer version JA3 strings report
// regardless of the version actually negotiated (RFC 8446 §4.1.2 mandates
// 0x0303 here for TLS 1.3 ClientHellos too).
const ja3RecordVersion = 0x0303

// OnConfigResolve is hook phase 1 (§4.7). It resolves which target this
// connection is for, applies timing jitter, then queries the per-target
// cache for a recent working fingerprint (spec.md:46) before falling back to
// rotation-based template selection.
func (d *DefaultCustomizer) OnConfigResolve(params hooks.ConfigParams) error {
	d.working.Store(nil)
	if params.Host != "" {
		t := Target{Host: params.Host, Port: params.Port}
		d.target.Store(&t)
	}
	target := d.currentTarget()

	if d.jit != nil {
		if err := d.jit.SleepContext(context.Background()); err != nil {
			return custls.Wrap(custls.HookError, err, "on_config_resolve: timing jitter interrupted")
		}
	}

	if d.cache != nil {
		if working, ok := d.cache.GetWorkingFingerprint(target); ok {
			if tpl, ok := templates.ByName(string(working.Template)); ok {
				// A fingerprint already worked against this target: stick with
				// it instead of rotating or re-randomizing this round.
				d.working.Store(&working)
				d.active.Store(&tpl)
				d.log().Debug("reusing working fingerprint for target",
					zap.String("host", target.Host),
					zap.String("template", tpl.Name),
				)
				return nil
			}
		}
	}

	policy := d.config.RotationPolicy()
	if policy == custls.RotationNone {
		return nil
	}

	counter := atomic.AddUint64(&d.counter, 1)
	chosen := selectTemplate(policy, counter-1, d.rotationList)
	if chosen == custls.TemplateNone {
		return nil
	}
	tpl, ok := templates.ByName(string(chosen))
	if !ok {
		return custls.New(custls.HookError, "on_config_resolve: rotation selected unknown template %q", chosen)
	}
	d.active.Store(&tpl)

	if d.metrics != nil {
		d.metrics.rotationSelections.WithLabelValues(string(chosen)).Inc()
	}
	d.log().Debug("rotation selected template",
		zap.String("template", string(chosen)),
		zap.Uint64("counter", counter),
	)
	return nil
}

// OnComponentsReady is hook phase 2 (§4.7): shuffle extensions then inject
// GREASE, if a template is active and randomization is enabled. When phase 1
// found a working fingerprint for this target, its exact cipher/extension
// shape is reused here instead of resampling.
func (d *DefaultCustomizer) OnComponentsReady(ciphers *[]uint16, extensionOrder *[]uint16) error {
	if working := d.working.Load(); working != nil {
		*ciphers = append([]uint16(nil), working.CipherSuites...)
		*extensionOrder = append([]uint16(nil), working.ExtensionOrder...)
		return nil
	}

	tpl, ok := d.resolvedTemplate()
	if !ok || d.config.RandomizationLevel() == custls.LevelNone {
		return nil
	}

	target := d.currentTarget()
	var recentGrease []uint16
	if d.cache != nil {
		recentGrease = d.cache.RecentGrease(target)
	}

	d.engineMu.Lock()
	shuffled := d.engine.ShuffleExtensions(extensionIDs(*extensionOrder), tpl)
	injection := d.engine.InjectGrease(*ciphers, shuffled, tpl, recentGrease)
	d.engineMu.Unlock()

	*ciphers = injection.Ciphers
	*extensionOrder = uint16s(injection.Extensions)

	if d.cache != nil {
		for _, v := range injection.Injected {
			d.cache.TrackGrease(target, v)
		}
	}
	if d.metrics != nil && len(injection.Injected) > 0 {
		d.metrics.greaseInjections.Add(float64(len(injection.Injected)))
	}
	return nil
}

// OnStructReady is hook phase 3 (§4.7): sample a padding length, splice in a
// Padding extension, and record the realized ClientHelloConfig. Reuses a
// working fingerprint's padding length, if phase 1 found one for this
// target, instead of resampling.
func (d *DefaultCustomizer) OnStructReady(payload *hooks.ClientHelloPayload) error {
	target := d.currentTarget()
	working := d.working.Load()

	var length int
	var templateName custls.TemplateRef
	switch {
	case working != nil:
		length = working.PaddingLength
		templateName = working.Template
	default:
		tpl, ok := d.resolvedTemplate()
		if !ok {
			return nil
		}
		templateName = custls.TemplateRef(tpl.Name)

		var recentPadding []int
		if d.cache != nil {
			recentPadding = d.cache.RecentPadding(target)
		}
		d.engineMu.Lock()
		length = d.engine.SamplePaddingLength(tpl.Padding, recentPadding)
		d.engineMu.Unlock()

		if d.cache != nil {
			d.cache.TrackPadding(target, length)
		}
	}

	if payload.ExtensionBytes == nil {
		payload.ExtensionBytes = make(map[uint16][]byte)
	}
	paddingID := uint16(extensions.IDPadding)
	payload.ExtensionBytes[paddingID] = make([]byte, length)
	hasPadding := false
	for _, id := range payload.ExtensionOrder {
		if id == paddingID {
			hasPadding = true
			break
		}
	}
	if !hasPadding {
		payload.ExtensionOrder = append(payload.ExtensionOrder, paddingID)
	}

	tpl, _ := templates.ByName(string(templateName))
	config := custls.ClientHelloConfig{
		Template:            templateName,
		CipherSuites:        append([]uint16(nil), payload.CipherSuites...),
		ExtensionOrder:      append([]uint16(nil), payload.ExtensionOrder...),
		ExtensionBytes:      cloneExtensionBytes(payload.ExtensionBytes),
		PaddingLength:       length,
		SupportedGroups:     append([]uint16(nil), tpl.SupportedGroups...),
		SignatureAlgorithms: append([]uint16(nil), tpl.SignatureAlgorithms...),
	}

	if d.tracker != nil {
		d.tracker.RecordSession(d.sessID, config)
	}

	d.lastJA3, d.lastJA3Hash = fingerprint.JA3(config, ja3RecordVersion)
	d.log().Debug("realized client hello fingerprint",
		zap.String("ja3_hash", d.lastJA3Hash),
	)
	return nil
}

// TransformWireBytes is hook phase 4 (§4.7): default pass-through.
func (d *DefaultCustomizer) TransformWireBytes(wire []byte) ([]byte, error) {
	d.lastWire = wire
	return wire, nil
}

func cloneExtensionBytes(m map[uint16][]byte) map[uint16][]byte {
	if m == nil {
		return nil
	}
	out := make(map[uint16][]byte, len(m))
	for k, v := range m {
		out[k] = append([]byte(nil), v...)
	}
	return out
}
