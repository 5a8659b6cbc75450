package randomizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custls"
	"custls/extensions"
	"custls/templates"
)

// TestShufflePSKAlwaysLast covers property P3.
func TestShufflePSKAlwaysLast(t *testing.T) {
	tpl := templates.Chrome130()
	order := append(append([]extensions.ID(nil), tpl.ExtensionOrder...), extensions.IDPreSharedKey)

	e := New(custls.LevelHigh, 1, 2)
	for i := 0; i < 20; i++ {
		shuffled := e.ShuffleExtensions(order, tpl)
		require.NotEmpty(t, shuffled)
		assert.Equal(t, extensions.IDPreSharedKey, shuffled[len(shuffled)-1])
	}
}

// TestShuffleCriticalStaysLeading covers property P4: every critical
// extension in the result appears before every standard/optional extension.
func TestShuffleCriticalStaysLeading(t *testing.T) {
	tpl := templates.Chrome130()
	e := New(custls.LevelMedium, 5, 9)

	for i := 0; i < 20; i++ {
		shuffled := e.ShuffleExtensions(tpl.ExtensionOrder, tpl)

		lastCriticalIdx := -1
		firstNonCriticalIdx := -1
		for idx, id := range shuffled {
			if id == extensions.IDPreSharedKey {
				continue
			}
			if tpl.GroupOf(id) == templates.GroupCritical {
				lastCriticalIdx = idx
			} else if firstNonCriticalIdx == -1 {
				firstNonCriticalIdx = idx
			}
		}
		if lastCriticalIdx != -1 && firstNonCriticalIdx != -1 {
			assert.Less(t, lastCriticalIdx, firstNonCriticalIdx)
		}
	}
}

func TestShuffleLevelNoneReturnsUnchanged(t *testing.T) {
	tpl := templates.Chrome130()
	e := New(custls.LevelNone, 1, 1)
	shuffled := e.ShuffleExtensions(tpl.ExtensionOrder, tpl)
	assert.Equal(t, tpl.ExtensionOrder, shuffled)
}

// TestGreaseValueDiversity covers property P15: over >=2 connections, the
// sequence of injected GREASE values is not trivially constant.
func TestGreaseValueDiversity(t *testing.T) {
	tpl := templates.Chrome130()
	e := New(custls.LevelHigh, 3, 4)

	seen := make(map[uint16]bool)
	var recentCiphers []uint16
	for i := 0; i < 10; i++ {
		result := e.InjectGrease(tpl.CipherSuites, tpl.ExtensionOrder, tpl, recentCiphers)
		for _, v := range result.Injected {
			seen[v] = true
		}
		recentCiphers = result.Injected
	}
	assert.GreaterOrEqual(t, len(seen), 2)
}

func TestGreaseInjectedValuesMatchMask(t *testing.T) {
	tpl := templates.Chrome130()
	e := New(custls.LevelHigh, 11, 12)
	result := e.InjectGrease(tpl.CipherSuites, tpl.ExtensionOrder, tpl, nil)
	for _, v := range result.Injected {
		assert.True(t, templates.IsGrease(uint32(v)))
	}
}

func TestGreaseRespectsCipherProbabilityZero(t *testing.T) {
	tpl := templates.Firefox135() // cipher and extension GREASE probabilities are 0
	e := New(custls.LevelHigh, 1, 1)
	result := e.InjectGrease(tpl.CipherSuites, tpl.ExtensionOrder, tpl, nil)
	assert.Empty(t, result.Injected)
	assert.Equal(t, tpl.CipherSuites, result.Ciphers)
}

func TestSamplePaddingLengthWithinBounds(t *testing.T) {
	tpl := templates.Chrome130()
	e := New(custls.LevelMedium, 20, 30)
	for i := 0; i < 100; i++ {
		length := e.SamplePaddingLength(tpl.Padding, nil)
		assert.GreaterOrEqual(t, length, tpl.Padding.Min)
		assert.LessOrEqual(t, length, tpl.Padding.Max)
	}
}

func TestSamplePaddingLengthNoneUsesFirstPMFEntry(t *testing.T) {
	tpl := templates.Chrome130()
	e := New(custls.LevelNone, 1, 1)
	length := e.SamplePaddingLength(tpl.Padding, nil)
	assert.Equal(t, tpl.Padding.PMF[0].Len, length)
}

func TestSamplePaddingLengthAvoidsRecentWhenPossible(t *testing.T) {
	tpl := templates.Chrome130()
	e := New(custls.LevelLight, 77, 88)
	recent := []int{tpl.Padding.PMF[0].Len, tpl.Padding.PMF[1].Len, tpl.Padding.PMF[2].Len}
	found := false
	for i := 0; i < 50; i++ {
		length := e.SamplePaddingLength(tpl.Padding, recent)
		if length == tpl.Padding.PMF[3].Len {
			found = true
			break
		}
	}
	assert.True(t, found, "sampler should eventually produce a non-recent value")
}
