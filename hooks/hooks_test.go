package hooks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custls"
)

func TestNoOpPassesThrough(t *testing.T) {
	var c Customizer = NoOp{}
	require.NoError(t, c.OnConfigResolve(ConfigParams{Host: "example.com"}))

	ciphers := []uint16{1, 2, 3}
	order := []uint16{4, 5, 6}
	require.NoError(t, c.OnComponentsReady(&ciphers, &order))
	assert.Equal(t, []uint16{1, 2, 3}, ciphers)

	payload := &ClientHelloPayload{}
	require.NoError(t, c.OnStructReady(payload))

	out, err := c.TransformWireBytes([]byte{0xAB, 0xCD})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD}, out)
}

func TestWrapHookErrorPreservesKind(t *testing.T) {
	err := wrapHookError(errors.New("boom"))
	require.Error(t, err)
	kind, ok := custls.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, custls.HookError, kind)
}

func TestWrapHookErrorNilIsNil(t *testing.T) {
	assert.NoError(t, wrapHookError(nil))
}

// overrideOnly is a Customizer that only overrides OnComponentsReady,
// demonstrating the embeddable-NoOp pattern documented in hooks.go.
type overrideOnly struct {
	NoOp
}

func (overrideOnly) OnComponentsReady(ciphers *[]uint16, order *[]uint16) error {
	*ciphers = append(*ciphers, 0x0a0a)
	return nil
}

func TestEmbeddedNoOpLetsCallerOverrideOnePhase(t *testing.T) {
	var c Customizer = overrideOnly{}
	require.NoError(t, c.OnConfigResolve(ConfigParams{}))

	ciphers := []uint16{1}
	order := []uint16{2}
	require.NoError(t, c.OnComponentsReady(&ciphers, &order))
	assert.Equal(t, []uint16{1, 0x0a0a}, ciphers)
}
