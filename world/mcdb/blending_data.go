package mcdb

import "encoding/binary"

// BlendingData is the tagged union stored under TagBlendingData: either a
// bare version marker, or a version with a 16-entry height-blend array and a
// trailing flag byte.
type BlendingData struct {
	// Zero reports whether this value is the zero-length variant (no
	// version, no data).
	Zero bool
	// Version is present whenever Zero is false.
	Version byte
	// Heights is only set when the variant whose first byte is 1 was parsed; a nil
	// entry marks "absent" (wire value i16::MAX).
	Heights []*int16
	// Flag is only meaningful alongside Heights.
	Flag int8
	hasData bool
}

const blendingAbsentHeight = int16(32767)

// ParseBlendingData reads a BlendingData record per its two-variant layout.
func ParseBlendingData(b []byte) (BlendingData, error) {
	if len(b) == 0 {
		return BlendingData{}, ErrStructuralMismatch
	}
	switch b[0] {
	case 0:
		switch len(b) {
		case 1:
			return BlendingData{Zero: true}, nil
		case 2:
			return BlendingData{Version: b[1]}, nil
		default:
			return BlendingData{}, ErrStructuralMismatch
		}
	case 1:
		if len(b) != 35 {
			return BlendingData{}, ErrStructuralMismatch
		}
		heights := make([]*int16, 16)
		for i := 0; i < 16; i++ {
			v := int16(binary.LittleEndian.Uint16(b[2+i*2:]))
			if v != blendingAbsentHeight {
				h := v
				heights[i] = &h
			}
		}
		return BlendingData{Version: b[1], Heights: heights, Flag: int8(b[34]), hasData: true}, nil
	default:
		return BlendingData{}, ErrStructuralMismatch
	}
}

// SerializeBlendingData writes d back to its wire form.
func SerializeBlendingData(d BlendingData) []byte {
	if d.Zero {
		return []byte{0}
	}
	if !d.hasData {
		return []byte{0, d.Version}
	}
	out := make([]byte, 35)
	out[0] = 1
	out[1] = d.Version
	for i := 0; i < 16; i++ {
		v := blendingAbsentHeight
		if d.Heights[i] != nil {
			v = *d.Heights[i]
		}
		binary.LittleEndian.PutUint16(out[2+i*2:], uint16(v))
	}
	out[34] = byte(d.Flag)
	return out
}
