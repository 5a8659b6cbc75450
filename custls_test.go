package custls

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormattingWithAndWithoutCause(t *testing.T) {
	bare := New(TemplateError, "bad shape %d", 3)
	assert.Equal(t, "Template error: bad shape 3", bare.Error())

	wrapped := Wrap(HookError, errors.New("underlying"), "phase failed")
	assert.Equal(t, "Hook error: phase failed: underlying", wrapped.Error())
	assert.Equal(t, errors.New("underlying"), errors.Unwrap(wrapped))
}

func TestToHostErrorIsLossless(t *testing.T) {
	original := New(DowngradeDetected, "downgrade detected")
	hostErr := ToHostError(original)
	assert.Contains(t, hostErr.Error(), "custls error:")
	assert.Contains(t, hostErr.Error(), "Downgrade detected")

	kind, ok := KindOf(hostErr)
	require.True(t, ok)
	assert.Equal(t, DowngradeDetected, kind)
}

func TestKindOfFalseForPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestBuilderDefaults(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, TemplateNone, cfg.Template())
	assert.Equal(t, LevelLight, cfg.RandomizationLevel())
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 1000, cfg.MaxCacheSize())
	assert.Equal(t, RotationNone, cfg.RotationPolicy())
	_, hasJitter := cfg.TimingJitter()
	assert.False(t, hasJitter)
}

func TestBuilderRejectsNegativeCacheSize(t *testing.T) {
	_, err := NewBuilder().WithMaxCacheSize(-1).Build()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ValidationError, kind)
}

func TestBuilderAccumulatesMultipleViolations(t *testing.T) {
	_, err := NewBuilder().
		WithMaxCacheSize(-5).
		WithTimingJitter(JitterConfig{Min: 2 * time.Second, Max: time.Second, Probability: 2.0}).
		Build()
	require.Error(t, err)
	// Both the cache-size and jitter violations should be present in the message.
	assert.Contains(t, err.Error(), "max_cache_size")
	assert.Contains(t, err.Error(), "timing jitter")
}

func TestRotationTemplatesReturnsIndependentCopy(t *testing.T) {
	cfg, err := NewBuilder().WithRotationTemplates(TemplateChrome130, TemplateFirefox135).Build()
	require.NoError(t, err)

	list := cfg.RotationTemplates()
	list[0] = TemplateSafari17
	assert.Equal(t, TemplateChrome130, cfg.RotationTemplates()[0])
}
