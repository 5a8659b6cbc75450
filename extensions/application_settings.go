package extensions

import (
	"bytes"
	"encoding/binary"

	"custls"
)

// ApplicationSettings (ALPS) carries a list of negotiated-protocol names,
// each length-prefixed by a single byte, under a u16 total-length prefix.
type ApplicationSettings struct {
	Protocols []string
}

func (a ApplicationSettings) Encode() ([]byte, error) {
	var body bytes.Buffer
	for _, p := range a.Protocols {
		if len(p) > 0xff {
			return nil, custls.New(custls.ExtensionError, "application_settings: protocol name %q exceeds 255 bytes", p)
		}
		body.WriteByte(byte(len(p)))
		body.WriteString(p)
	}
	if body.Len() > 0xffff {
		return nil, custls.New(custls.ExtensionError, "application_settings: body exceeds 65535 bytes")
	}
	out := make([]byte, 2, 2+body.Len())
	binary.BigEndian.PutUint16(out, uint16(body.Len()))
	return append(out, body.Bytes()...), nil
}

func DecodeApplicationSettings(data []byte) (ApplicationSettings, error) {
	r := bytes.NewReader(data)
	total, err := readUint16(r)
	if err != nil {
		return ApplicationSettings{}, err
	}
	if int(total) > r.Len() {
		return ApplicationSettings{}, invalidMessage(kindMissingData, "application_settings: total length exceeds available data")
	}
	body, err := readExact(r, int(total))
	if err != nil {
		return ApplicationSettings{}, err
	}
	if err := assertDrained(r); err != nil {
		return ApplicationSettings{}, err
	}

	br := bytes.NewReader(body)
	var out ApplicationSettings
	for br.Len() > 0 {
		n, err := readUint8(br)
		if err != nil {
			return ApplicationSettings{}, err
		}
		name, err := readExact(br, int(n))
		if err != nil {
			return ApplicationSettings{}, err
		}
		out.Protocols = append(out.Protocols, string(name))
	}
	return out, nil
}
