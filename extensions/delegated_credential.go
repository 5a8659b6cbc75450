package extensions

import (
	"bytes"
	"encoding/binary"

	"custls"
)

// DelegatedCredential carries a list of u16 signature-scheme codepoints under
// a u16 byte-length prefix. The byte length must be even (each scheme is 2
// bytes).
type DelegatedCredential struct {
	SignatureSchemes []uint16
}

func (d DelegatedCredential) Encode() ([]byte, error) {
	bodyLen := len(d.SignatureSchemes) * 2
	if bodyLen > 0xffff {
		return nil, custls.New(custls.ExtensionError, "delegated_credential: body exceeds 65535 bytes")
	}
	out := make([]byte, 2, 2+bodyLen)
	binary.BigEndian.PutUint16(out, uint16(bodyLen))
	for _, s := range d.SignatureSchemes {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], s)
		out = append(out, b[:]...)
	}
	return out, nil
}

func DecodeDelegatedCredential(data []byte) (DelegatedCredential, error) {
	r := bytes.NewReader(data)
	length, err := readUint16(r)
	if err != nil {
		return DelegatedCredential{}, err
	}
	if length%2 != 0 {
		return DelegatedCredential{}, invalidMessage(kindOddLength, "delegated_credential: length must be even")
	}
	body, err := readExact(r, int(length))
	if err != nil {
		return DelegatedCredential{}, err
	}
	if err := assertDrained(r); err != nil {
		return DelegatedCredential{}, err
	}

	var out DelegatedCredential
	for i := 0; i < len(body); i += 2 {
		out.SignatureSchemes = append(out.SignatureSchemes, binary.BigEndian.Uint16(body[i:i+2]))
	}
	return out, nil
}
