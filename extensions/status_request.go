package extensions

import (
	"bytes"
	"encoding/binary"

	"custls"
)

// StatusRequest is the OCSP status_request extension: a status type byte,
// a u16-length-prefixed list of u16-length-prefixed responder IDs, and a
// u16-length-prefixed request-extensions byte string.
type StatusRequest struct {
	StatusType        uint8
	ResponderIDList   [][]byte
	RequestExtensions []byte
}

func (s StatusRequest) Encode() ([]byte, error) {
	var responderIDs bytes.Buffer
	for _, id := range s.ResponderIDList {
		if len(id) > 0xffff {
			return nil, custls.New(custls.ExtensionError, "status_request: responder id exceeds 65535 bytes")
		}
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(id)))
		responderIDs.Write(lenBuf[:])
		responderIDs.Write(id)
	}
	if responderIDs.Len() > 0xffff {
		return nil, custls.New(custls.ExtensionError, "status_request: responder id list exceeds 65535 bytes")
	}
	if len(s.RequestExtensions) > 0xffff {
		return nil, custls.New(custls.ExtensionError, "status_request: request extensions exceed 65535 bytes")
	}

	out := make([]byte, 0, 1+2+responderIDs.Len()+2+len(s.RequestExtensions))
	out = append(out, s.StatusType)
	var outerLen [2]byte
	binary.BigEndian.PutUint16(outerLen[:], uint16(responderIDs.Len()))
	out = append(out, outerLen[:]...)
	out = append(out, responderIDs.Bytes()...)
	var extLen [2]byte
	binary.BigEndian.PutUint16(extLen[:], uint16(len(s.RequestExtensions)))
	out = append(out, extLen[:]...)
	out = append(out, s.RequestExtensions...)
	return out, nil
}

func DecodeStatusRequest(data []byte) (StatusRequest, error) {
	r := bytes.NewReader(data)
	statusType, err := readUint8(r)
	if err != nil {
		return StatusRequest{}, err
	}

	outerLen, err := readUint16(r)
	if err != nil {
		return StatusRequest{}, err
	}
	responderBody, err := readExact(r, int(outerLen))
	if err != nil {
		return StatusRequest{}, err
	}

	extLen, err := readUint16(r)
	if err != nil {
		return StatusRequest{}, err
	}
	reqExt, err := readExact(r, int(extLen))
	if err != nil {
		return StatusRequest{}, err
	}
	if err := assertDrained(r); err != nil {
		return StatusRequest{}, err
	}

	out := StatusRequest{StatusType: statusType, RequestExtensions: reqExt}
	br := bytes.NewReader(responderBody)
	for br.Len() > 0 {
		idLen, err := readUint16(br)
		if err != nil {
			return StatusRequest{}, err
		}
		id, err := readExact(br, int(idLen))
		if err != nil {
			return StatusRequest{}, err
		}
		out.ResponderIDList = append(out.ResponderIDList, id)
	}
	return out, nil
}
