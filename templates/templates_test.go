package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custls/extensions"
)

// TestBuiltinTemplatesSatisfyInvariants covers property P9.
func TestBuiltinTemplatesSatisfyInvariants(t *testing.T) {
	for _, tpl := range All() {
		t.Run(tpl.Name, func(t *testing.T) {
			require.NoError(t, tpl.Validate())
		})
	}
}

func TestIsGrease(t *testing.T) {
	for _, v := range GreaseValues {
		assert.True(t, IsGrease(uint32(v)), "0x%04x should be grease", v)
	}
	assert.False(t, IsGrease(0x1301))
	assert.False(t, IsGrease(0x0a1a)) // mismatched high nibbles
}

// TestNaturalnessFilterRejectsBlacklist covers property P5.
func TestNaturalnessFilterRejectsBlacklist(t *testing.T) {
	filter := NaturalnessFilter{
		Blacklist: [][]extensions.ID{
			{extensions.IDApplicationSettingsOld, extensions.IDApplicationSettings},
		},
	}
	assert.False(t, filter.IsNatural([]extensions.ID{
		extensions.IDApplicationSettingsOld, extensions.IDApplicationSettings, extensions.IDALPN,
	}))
	assert.True(t, filter.IsNatural([]extensions.ID{extensions.IDApplicationSettings, extensions.IDALPN}))
}

func TestNaturalnessFilterWhitelist(t *testing.T) {
	filter := NaturalnessFilter{
		Whitelist: [][]extensions.ID{{extensions.IDKeyShare, extensions.IDSupportedVersions}},
	}
	// Neither present: fine.
	assert.True(t, filter.IsNatural(nil))
	// Both present: fine.
	assert.True(t, filter.IsNatural([]extensions.ID{extensions.IDKeyShare, extensions.IDSupportedVersions}))
	// Only one present: rejected.
	assert.False(t, filter.IsNatural([]extensions.ID{extensions.IDKeyShare}))
}

func TestNaturalnessFilterDependency(t *testing.T) {
	filter := NaturalnessFilter{
		DependencyMap: map[extensions.ID][]extensions.ID{
			extensions.IDApplicationSettings: {extensions.IDALPN},
		},
	}
	assert.False(t, filter.IsNatural([]extensions.ID{extensions.IDApplicationSettings}))
	assert.True(t, filter.IsNatural([]extensions.ID{extensions.IDApplicationSettings, extensions.IDALPN}))
}

func TestValidateRejectsKeyShareOutsideSupportedGroups(t *testing.T) {
	tpl := Chrome130()
	tpl.KeyShareGroups = []uint16{0x9999}
	err := tpl.Validate()
	require.Error(t, err)
}

func TestValidateRejectsPaddingMinGreaterThanMax(t *testing.T) {
	tpl := Chrome130()
	tpl.Padding.Min, tpl.Padding.Max = 100, 10
	require.Error(t, tpl.Validate())
}

func TestValidateRejectsDuplicateExtension(t *testing.T) {
	tpl := Chrome130()
	tpl.ExtensionOrder = append(tpl.ExtensionOrder, tpl.ExtensionOrder[0])
	require.Error(t, tpl.Validate())
}

func TestValidateRejectsBadGreaseValue(t *testing.T) {
	tpl := Chrome130()
	tpl.Grease.Values = []uint16{0x1234}
	require.Error(t, tpl.Validate())
}

func TestByNameAndAll(t *testing.T) {
	for _, name := range []string{"chrome_130", "firefox_135", "safari_17", "edge_130"} {
		tpl, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, tpl.Name)
	}
	_, ok := ByName("does_not_exist")
	assert.False(t, ok)
	assert.Len(t, All(), 4)
}

// TestBuiltinTemplatesCarryH2Profile documents that HTTP/2 fingerprint data
// lives alongside the TLS shape (spec.md's "data lives in templates" framing
// for the HTTP/2 non-goal).
func TestBuiltinTemplatesCarryH2Profile(t *testing.T) {
	for _, tpl := range All() {
		t.Run(tpl.Name, func(t *testing.T) {
			assert.NotEmpty(t, tpl.H2Profile.Settings)
		})
	}

	firefox := Firefox135()
	require.NotEmpty(t, firefox.H2Profile.PriorityFrames)
	assert.Equal(t, firefox.H2Profile.PriorityFrames[0].PriorityParam, firefox.H2Profile.HeaderPriority)

	chrome := Chrome130()
	assert.Empty(t, chrome.H2Profile.PriorityFrames)
}

// TestFirefoxHasNoDuplicateSupportedVersions documents the Open Question
// decision in SPEC_FULL.md §12: the duplicate observed in original_source is
// not reproduced.
func TestFirefoxHasNoDuplicateSupportedVersions(t *testing.T) {
	tpl := Firefox135()
	count := 0
	for _, id := range tpl.ExtensionOrder {
		if id == extensions.IDSupportedVersions {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
