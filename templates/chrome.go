package templates

import (
	"custls/extensions"
	"custls/internal/h2fp"
)

// Chrome130 constructs the Chrome 130+ template, extracted from packet
// captures of that browser/version. Grounded on the teacher's
// internal/tls/presets.go (chrome preset selection) and
// internal/tls/fingerprint.go's Chrome GREASE handling. GREASE positions
// here are at the front of both the cipher and the extension list.
func Chrome130() TemplateData {
	order := []extensions.ID{
		extensions.IDServerName,
		extensions.IDExtendedMasterSecret,
		extensions.IDRenegotiationInfo,
		extensions.IDSupportedGroups,
		extensions.IDECPointFormats,
		extensions.IDSessionTicket,
		extensions.IDApplicationSettings,
		extensions.IDStatusRequest,
		extensions.IDSignatureAlgorithms,
		extensions.IDSCT,
		extensions.IDKeyShare,
		extensions.IDPSKKeyExchangeModes,
		extensions.IDSupportedVersions,
		extensions.IDCompressCertificate,
		extensions.IDALPN,
		extensions.IDPadding,
	}

	groups := map[extensions.ID]ExtensionGroup{
		extensions.IDSupportedVersions:     GroupCritical,
		extensions.IDKeyShare:              GroupCritical,
		extensions.IDSignatureAlgorithms:    GroupCritical,
		extensions.IDPadding:                GroupOptional,
		extensions.IDStatusRequest:          GroupOptional,
		extensions.IDSCT:                   GroupOptional,
		extensions.IDApplicationSettings:    GroupOptional,
		extensions.IDCompressCertificate:    GroupOptional,
	}

	return TemplateData{
		Name: "chrome_130",
		CipherSuites: []uint16{
			0x1301, 0x1302, 0x1303, // TLS 1.3 AES128/256-GCM, CHACHA20
			0xc02b, 0xc02f, 0xc02c, 0xc030,
			0xcca9, 0xcca8,
			0xc013, 0xc014,
			0x009c, 0x009d,
			0x002f, 0x0035,
		},
		ExtensionOrder:  order,
		ExtensionGroups: groups,
		SupportedGroups: []uint16{0x001d, 0x0017, 0x0018}, // X25519, P-256, P-384
		KeyShareGroups:  []uint16{0x001d},                 // X25519
		SignatureAlgorithms: []uint16{
			0x0403, 0x0804, 0x0401, 0x0503, 0x0805, 0x0501, 0x0806, 0x0601,
		},
		ALPN: []string{"h2", "http/1.1"},
		Grease: GreasePattern{
			CipherProbability:    1.0,
			ExtensionProbability: 1.0,
			// Chrome prefers GREASE in the front third of the list.
			CipherPositions:    []float64{0.0},
			ExtensionPositions: []float64{0.0, 0.05},
		},
		Padding: PaddingDistribution{
			PMF: []PMFEntry{
				{Len: 0, P: 0.2},
				{Len: 64, P: 0.3},
				{Len: 128, P: 0.3},
				{Len: 224, P: 0.2},
			},
			Min:          0,
			Max:          512,
			PowerOf2Bias: 0.5,
		},
		Filter: NaturalnessFilter{
			Blacklist: [][]extensions.ID{
				{extensions.IDApplicationSettingsOld, extensions.IDApplicationSettings},
			},
			DependencyMap: map[extensions.ID][]extensions.ID{
				extensions.IDApplicationSettings: {extensions.IDALPN},
				extensions.IDKeyShare:            {extensions.IDSupportedGroups},
			},
		},
		H2Profile: h2fp.MustParseAkamai(
			"1:65536;2:0;4:6291456;6:262144|15663105|0|m,a,s,p",
		),
	}
}
