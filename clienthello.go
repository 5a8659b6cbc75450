package custls

// ClientHelloConfig is the §3 data-model "snapshot of what was sent": enough
// of a realized ClientHello to reproduce or inspect it later, independent of
// any host TLS stack's wire types. The cache and the session tracker both
// store clones of this value (never references), matching the spec's
// clone-on-read requirement.
type ClientHelloConfig struct {
	Template            TemplateRef
	CipherSuites        []uint16
	ExtensionOrder      []uint16
	ExtensionBytes      map[uint16][]byte
	GreaseCipherIndices []int
	GreaseExtIndices    []int
	PaddingLength       int
	Seed                uint64
	SupportedGroups     []uint16
	SignatureAlgorithms []uint16
}

// Clone returns a deep copy so callers can mutate the result without
// affecting cache- or tracker-owned state.
func (c ClientHelloConfig) Clone() ClientHelloConfig {
	out := c
	out.CipherSuites = append([]uint16(nil), c.CipherSuites...)
	out.ExtensionOrder = append([]uint16(nil), c.ExtensionOrder...)
	out.GreaseCipherIndices = append([]int(nil), c.GreaseCipherIndices...)
	out.GreaseExtIndices = append([]int(nil), c.GreaseExtIndices...)
	out.SupportedGroups = append([]uint16(nil), c.SupportedGroups...)
	out.SignatureAlgorithms = append([]uint16(nil), c.SignatureAlgorithms...)
	if c.ExtensionBytes != nil {
		out.ExtensionBytes = make(map[uint16][]byte, len(c.ExtensionBytes))
		for k, v := range c.ExtensionBytes {
			out.ExtensionBytes[k] = append([]byte(nil), v...)
		}
	}
	return out
}
