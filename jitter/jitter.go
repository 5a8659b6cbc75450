// Package jitter implements the optional timing-jitter component named in
// spec §4.9: with a configured probability, sleep for a uniformly sampled
// duration before a connection proceeds.
//
// Grounded on the teacher's internal/httpclient/timing.go timingTracker
// (mutex-guarded struct with Lock/Unlock bracketing every access), here
// repurposed from passively recording elapsed time to actively sampling and
// sleeping for one.
package jitter

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"custls"
)

// Jitter samples and (optionally) sleeps for a randomized delay per
// connection. Safe for concurrent use; mirrors the teacher's
// mutex-per-struct convention even though the guarded state here is just the
// RNG.
type Jitter struct {
	mu          sync.Mutex
	min         time.Duration
	max         time.Duration
	probability float64
	rng         *rand.Rand
}

// New validates cfg (min <= max, probability in [0,1], as required at
// construction by §4.9) and builds a Jitter seeded from seed1/seed2.
func New(cfg custls.JitterConfig, seed1, seed2 uint64) (*Jitter, error) {
	if cfg.Min > cfg.Max {
		return nil, custls.New(custls.ValidationError, "jitter: min (%s) > max (%s)", cfg.Min, cfg.Max)
	}
	if cfg.Probability < 0 || cfg.Probability > 1 {
		return nil, custls.New(custls.ValidationError, "jitter: probability %.4f out of [0,1]", cfg.Probability)
	}
	return &Jitter{
		min:         cfg.Min,
		max:         cfg.Max,
		probability: cfg.Probability,
		rng:         rand.New(rand.NewPCG(seed1, seed2)),
	}, nil
}

// sample decides whether to apply jitter this call and, if so, for how long.
func (j *Jitter) sample() (time.Duration, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.rng.Float64() >= j.probability {
		return 0, false
	}
	if j.max <= j.min {
		return j.min, true
	}
	span := int64(j.max - j.min)
	delay := j.min + time.Duration(j.rng.Int64N(span+1))
	return delay, true
}

// SleepContext samples a delay and, if chosen, sleeps for it or until ctx is
// cancelled, whichever comes first. This is the only blocking operation in
// the CORE besides mutex acquisition, per §5.
func (j *Jitter) SleepContext(ctx context.Context) error {
	delay, apply := j.sample()
	if !apply {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
