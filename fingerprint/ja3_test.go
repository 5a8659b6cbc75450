package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"custls"
)

func TestJA3ExcludesGreaseValues(t *testing.T) {
	cfg := custls.ClientHelloConfig{
		CipherSuites:    []uint16{0x0a0a, 0x1301, 0x1302},
		ExtensionOrder:  []uint16{0, 10, 0x2a2a},
		SupportedGroups: []uint16{0x001d, 0x0017},
	}
	str, hash := JA3(cfg, 0x0303)

	assert.Equal(t, "771,4865-4866,0-10,29-23,0", str)
	assert.Len(t, hash, 32)
}

func TestJA3IsDeterministic(t *testing.T) {
	cfg := custls.ClientHelloConfig{
		CipherSuites:   []uint16{0x1301, 0x1302},
		ExtensionOrder: []uint16{0, 10, 43},
	}
	str1, hash1 := JA3(cfg, 0x0304)
	str2, hash2 := JA3(cfg, 0x0304)
	assert.Equal(t, str1, str2)
	assert.Equal(t, hash1, hash2)
}
