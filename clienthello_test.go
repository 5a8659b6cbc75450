package custls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientHelloConfigCloneIsIndependent(t *testing.T) {
	original := ClientHelloConfig{
		Template:       TemplateChrome130,
		CipherSuites:   []uint16{1, 2, 3},
		ExtensionOrder: []uint16{4, 5},
		ExtensionBytes: map[uint16][]byte{4: {0xAA, 0xBB}},
		PaddingLength:  64,
	}

	clone := original.Clone()
	clone.CipherSuites[0] = 999
	clone.ExtensionBytes[4][0] = 0xFF

	assert.Equal(t, uint16(1), original.CipherSuites[0])
	assert.Equal(t, byte(0xAA), original.ExtensionBytes[4][0])
	assert.Equal(t, original.Template, clone.Template)
	assert.Equal(t, original.PaddingLength, clone.PaddingLength)
}

func TestClientHelloConfigCloneHandlesNilFields(t *testing.T) {
	clone := ClientHelloConfig{}.Clone()
	assert.Nil(t, clone.ExtensionBytes)
	assert.Empty(t, clone.CipherSuites)
}
