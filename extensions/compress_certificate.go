package extensions

import (
	"bytes"
	"encoding/binary"

	"custls"
)

// CompressCertificate carries a list of u16 compression-algorithm codepoints
// under a u8 byte-length prefix. The byte length must be even.
type CompressCertificate struct {
	Algorithms []uint16
}

func (c CompressCertificate) Encode() ([]byte, error) {
	bodyLen := len(c.Algorithms) * 2
	if bodyLen > 0xff {
		return nil, custls.New(custls.ExtensionError, "compress_certificate: body exceeds 255 bytes")
	}
	out := make([]byte, 1, 1+bodyLen)
	out[0] = byte(bodyLen)
	for _, a := range c.Algorithms {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], a)
		out = append(out, b[:]...)
	}
	return out, nil
}

func DecodeCompressCertificate(data []byte) (CompressCertificate, error) {
	r := bytes.NewReader(data)
	length, err := readUint8(r)
	if err != nil {
		return CompressCertificate{}, err
	}
	if length%2 != 0 {
		return CompressCertificate{}, invalidMessage(kindOddLength, "compress_certificate: length must be even")
	}
	body, err := readExact(r, int(length))
	if err != nil {
		return CompressCertificate{}, err
	}
	if err := assertDrained(r); err != nil {
		return CompressCertificate{}, err
	}

	var out CompressCertificate
	for i := 0; i < len(body); i += 2 {
		out.Algorithms = append(out.Algorithms, binary.BigEndian.Uint16(body[i:i+2]))
	}
	return out, nil
}
