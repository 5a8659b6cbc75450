package templates

import (
	"custls/extensions"
	"custls/internal/h2fp"
)

// Firefox135 constructs the Firefox 135+ template.
//
// The Rust original this spec was distilled from duplicated
// SupportedVersions in the Firefox extension list; per SPEC_FULL.md §12 that
// is treated as an accidental duplicate rather than a deliberate browser
// quirk (TemplateData.Validate rejects duplicate extension IDs), so it
// appears exactly once here.
func Firefox135() TemplateData {
	order := []extensions.ID{
		extensions.IDServerName,
		extensions.IDExtendedMasterSecret,
		extensions.IDRenegotiationInfo,
		extensions.IDSupportedGroups,
		extensions.IDECPointFormats,
		extensions.IDSessionTicket,
		extensions.IDALPN,
		extensions.IDStatusRequest,
		extensions.IDDelegatedCredential,
		extensions.IDKeyShare,
		extensions.IDSupportedVersions,
		extensions.IDSignatureAlgorithms,
		extensions.IDPSKKeyExchangeModes,
		extensions.IDCompressCertificate,
		extensions.IDPadding,
	}

	groups := map[extensions.ID]ExtensionGroup{
		extensions.IDSupportedVersions:  GroupCritical,
		extensions.IDKeyShare:           GroupCritical,
		extensions.IDSignatureAlgorithms: GroupCritical,
		extensions.IDPadding:            GroupOptional,
		extensions.IDDelegatedCredential: GroupOptional,
		extensions.IDStatusRequest:      GroupOptional,
	}

	return TemplateData{
		Name: "firefox_135",
		CipherSuites: []uint16{
			0x1301, 0x1302, 0x1303,
			0xc02b, 0xc02f, 0xc02c, 0xc030,
			0xcca9, 0xcca8,
			0xc013, 0xc014,
			0x002f, 0x0035, 0x000a,
		},
		ExtensionOrder:  order,
		ExtensionGroups: groups,
		SupportedGroups: []uint16{0x001d, 0x0017, 0x0018, 0x0019}, // X25519, P-256, P-384, P-521
		KeyShareGroups:  []uint16{0x001d, 0x0017},
		SignatureAlgorithms: []uint16{
			0x0403, 0x0503, 0x0603, 0x0804, 0x0805, 0x0806, 0x0401, 0x0501, 0x0601,
		},
		ALPN: []string{"h2", "http/1.1"},
		Grease: GreasePattern{
			// Firefox does not GREASE ciphers or extensions (distinguishing
			// trait versus Chromium-based browsers).
			CipherProbability:    0.0,
			ExtensionProbability: 0.0,
		},
		Padding: PaddingDistribution{
			PMF: []PMFEntry{
				{Len: 0, P: 0.4},
				{Len: 32, P: 0.3},
				{Len: 96, P: 0.3},
			},
			Min:          0,
			Max:          256,
			PowerOf2Bias: 0.3,
		},
		Filter: NaturalnessFilter{
			DependencyMap: map[extensions.ID][]extensions.ID{
				extensions.IDKeyShare: {extensions.IDSupportedGroups},
			},
		},
		H2Profile: h2fp.MustParseAkamai(
			"1:65536;4:131072;5:16384|12517377|3:0:0:201,5:0:0:101,7:0:0:1,9:0:7:1,11:0:3:1,13:0:0:241|m,a,s,p",
		),
	}
}
