package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPaddingRoundTrip covers end-to-end scenario 1: a 100-byte padding
// extension encodes to 100 zero bytes and decodes back to length 100.
func TestPaddingRoundTrip(t *testing.T) {
	p := Padding{Length: 100}
	encoded, err := p.Encode()
	require.NoError(t, err)
	require.Len(t, encoded, 100)
	for _, b := range encoded {
		assert.Equal(t, byte(0), b)
	}

	decoded := DecodePadding(encoded)
	assert.Equal(t, p, decoded)
}

// TestStatusRequestExactBytes covers end-to-end scenario 2.
func TestStatusRequestExactBytes(t *testing.T) {
	s := StatusRequest{StatusType: 1}
	encoded, err := s.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x00}, encoded)

	decoded, err := DecodeStatusRequest(encoded)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestApplicationSettingsRoundTrip(t *testing.T) {
	cases := []ApplicationSettings{
		{},
		{Protocols: []string{"h2"}},
		{Protocols: []string{"h2", "http/1.1"}},
	}
	for _, c := range cases {
		encoded, err := c.Encode()
		require.NoError(t, err)
		decoded, err := DecodeApplicationSettings(encoded)
		require.NoError(t, err)
		assert.Equal(t, c, decoded)
	}
}

func TestDelegatedCredentialRoundTrip(t *testing.T) {
	cases := []DelegatedCredential{
		{},
		{SignatureSchemes: []uint16{0x0403, 0x0804}},
	}
	for _, c := range cases {
		encoded, err := c.Encode()
		require.NoError(t, err)
		decoded, err := DecodeDelegatedCredential(encoded)
		require.NoError(t, err)
		assert.Equal(t, c, decoded)
	}
}

func TestDelegatedCredentialOddLength(t *testing.T) {
	// length=1 with a single byte: not a multiple of 2.
	_, err := DecodeDelegatedCredential([]byte{0x00, 0x01, 0xff})
	require.Error(t, err)
}

func TestCompressCertificateRoundTrip(t *testing.T) {
	cases := []CompressCertificate{
		{},
		{Algorithms: []uint16{2, 3}},
	}
	for _, c := range cases {
		encoded, err := c.Encode()
		require.NoError(t, err)
		decoded, err := DecodeCompressCertificate(encoded)
		require.NoError(t, err)
		assert.Equal(t, c, decoded)
	}
}

func TestCompressCertificateOddLength(t *testing.T) {
	_, err := DecodeCompressCertificate([]byte{0x01, 0xff})
	require.Error(t, err)
}

func TestStatusRequestRoundTripWithData(t *testing.T) {
	s := StatusRequest{
		StatusType:        1,
		ResponderIDList:   [][]byte{{0x01, 0x02}, {0x03}},
		RequestExtensions: []byte{0xaa, 0xbb},
	}
	encoded, err := s.Encode()
	require.NoError(t, err)
	decoded, err := DecodeStatusRequest(encoded)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestSCTRoundTrip(t *testing.T) {
	s := SignedCertificateTimestamp{}
	encoded, err := s.Encode()
	require.NoError(t, err)
	assert.Empty(t, encoded)

	decoded, err := DecodeSignedCertificateTimestamp(encoded)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestSCTRejectsPayload(t *testing.T) {
	_, err := DecodeSignedCertificateTimestamp([]byte{0x01})
	require.Error(t, err)
}

// TestMissingDataSurfacesInvalidMessage covers the "missing data" decode kind.
func TestMissingDataSurfacesInvalidMessage(t *testing.T) {
	_, err := DecodeApplicationSettings([]byte{0x00})
	require.Error(t, err)
}

// TestTrailingDataSurfacesInvalidMessage covers the "trailing data" decode kind.
func TestTrailingDataSurfacesInvalidMessage(t *testing.T) {
	encoded, err := (ApplicationSettings{}).Encode()
	require.NoError(t, err)
	encoded = append(encoded, 0xff)
	_, err = DecodeApplicationSettings(encoded)
	require.Error(t, err)
}
