package templates

import (
	"custls/extensions"
	"custls/internal/h2fp"
)

// Safari17 constructs the Safari 17+ (WebKit) template.
func Safari17() TemplateData {
	order := []extensions.ID{
		extensions.IDServerName,
		extensions.IDExtendedMasterSecret,
		extensions.IDRenegotiationInfo,
		extensions.IDSupportedGroups,
		extensions.IDECPointFormats,
		extensions.IDALPN,
		extensions.IDStatusRequest,
		extensions.IDSignatureAlgorithms,
		extensions.IDSCT,
		extensions.IDKeyShare,
		extensions.IDPSKKeyExchangeModes,
		extensions.IDSupportedVersions,
		extensions.IDCompressCertificate,
	}

	groups := map[extensions.ID]ExtensionGroup{
		extensions.IDSupportedVersions:  GroupCritical,
		extensions.IDKeyShare:           GroupCritical,
		extensions.IDSignatureAlgorithms: GroupCritical,
		extensions.IDSCT:                GroupOptional,
		extensions.IDCompressCertificate: GroupOptional,
	}

	return TemplateData{
		Name: "safari_17",
		CipherSuites: []uint16{
			0x1301, 0x1302, 0x1303,
			0xc02c, 0xc02b, 0xc030, 0xc02f,
			0xcca9, 0xcca8,
			0xc00a, 0xc009, 0xc014, 0xc013,
			0x009d, 0x009c, 0x0035, 0x002f,
		},
		ExtensionOrder:  order,
		ExtensionGroups: groups,
		SupportedGroups: []uint16{0x001d, 0x0017, 0x0018, 0x0019},
		KeyShareGroups:  []uint16{0x001d},
		SignatureAlgorithms: []uint16{
			0x0403, 0x0804, 0x0503, 0x0805, 0x0806, 0x0401, 0x0501, 0x0601,
		},
		ALPN: []string{"h2", "http/1.1"},
		Grease: GreasePattern{
			// Safari does not GREASE at all; it is the most static of the
			// four built-in templates.
			CipherProbability:    0.0,
			ExtensionProbability: 0.0,
		},
		Padding: PaddingDistribution{
			PMF: []PMFEntry{
				{Len: 0, P: 0.6},
				{Len: 16, P: 0.4},
			},
			Min:          0,
			Max:          64,
			PowerOf2Bias: 0.2,
		},
		Filter: NaturalnessFilter{
			DependencyMap: map[extensions.ID][]extensions.ID{
				extensions.IDKeyShare: {extensions.IDSupportedGroups},
			},
		},
		H2Profile: h2fp.MustParseAkamai(
			"2:0;4:2097152;3:100|10485760|0|m,s,p,a",
		),
	}
}
