package orchestrator

import (
	"go.uber.org/zap"

	"custls"
	"custls/security"
)

// RecordHandshakeResult feeds a completed handshake's outcome back into the
// per-target cache (§4.4's insertion protocol), wired here rather than in a
// hook phase because success/failure is only known after the host completes
// the handshake, outside the four ordered phases.
func (d *DefaultCustomizer) RecordHandshakeResult(config custls.ClientHelloConfig, success bool) {
	if d.cache == nil {
		return
	}
	target := d.currentTarget()
	_, alreadyTracked := d.cache.StatsFor(target)
	before := d.cache.Size()
	d.cache.RecordResult(target, config, success)
	after := d.cache.Size()

	if d.metrics != nil && !alreadyTracked && after <= before {
		// a new target was inserted but size didn't grow: an eviction happened.
		d.metrics.cacheEvictions.Inc()
	}
}

// ValidateServerRandom feeds the 32-byte ServerHello.random to the downgrade
// canary validator (§4.6), per the host contract in §6 item 4.
func (d *DefaultCustomizer) ValidateServerRandom(serverRandom []byte, expected, negotiated security.Version) error {
	err := security.ValidateDowngradeProtection(serverRandom, expected, negotiated)
	if kind, ok := custls.KindOf(err); ok && kind == custls.DowngradeDetected {
		if d.metrics != nil {
			d.metrics.downgradeDetected.Inc()
		}
		d.log().Warn("downgrade canary triggered",
			zap.Error(err),
		)
	}
	return err
}
