package extensions

// Padding is raw zero bytes of a configured length. On decode its length is
// simply the remainder of the reader — padding carries no internal structure.
type Padding struct {
	Length int
}

// Encode writes exactly Length zero bytes (property P11).
func (p Padding) Encode() ([]byte, error) {
	if p.Length < 0 {
		return nil, nil
	}
	return make([]byte, p.Length), nil
}

// DecodePadding treats the entirety of data as padding; it never fails.
func DecodePadding(data []byte) Padding {
	return Padding{Length: len(data)}
}
