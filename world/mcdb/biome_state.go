package mcdb

import "encoding/binary"

// BiomeStateEntry pairs a biome id with a weight byte, in either the legacy
// (one-byte count, one-byte biome id) or newer (two-byte count, two-byte
// biome id) BiomeState encoding.
type BiomeStateEntry struct {
	Biome  uint16
	Weight byte
}

// ParseBiomeState reads a BiomeState record. legacy selects whether the
// count and biome-id fields are one or two bytes wide; the two historical
// encodings aren't distinguishable from the bytes alone, so the caller
// (which already knows the chunk's format generation) selects it.
func ParseBiomeState(b []byte, legacy bool) ([]BiomeStateEntry, error) {
	if legacy {
		if len(b) < 1 {
			return nil, ErrStructuralMismatch
		}
		count := int(b[0])
		if len(b) != 1+count*2 {
			return nil, ErrStructuralMismatch
		}
		out := make([]BiomeStateEntry, count)
		for i := range out {
			e := b[1+i*2:]
			out[i] = BiomeStateEntry{Biome: uint16(e[0]), Weight: e[1]}
		}
		return out, nil
	}
	if len(b) < 2 {
		return nil, ErrStructuralMismatch
	}
	count := int(binary.LittleEndian.Uint16(b))
	if len(b) != 2+count*3 {
		return nil, ErrStructuralMismatch
	}
	out := make([]BiomeStateEntry, count)
	for i := range out {
		e := b[2+i*3:]
		out[i] = BiomeStateEntry{Biome: binary.LittleEndian.Uint16(e[0:2]), Weight: e[2]}
	}
	return out, nil
}

// SerializeBiomeState writes entries back to the selected BiomeState
// encoding.
func SerializeBiomeState(entries []BiomeStateEntry, legacy bool) ([]byte, error) {
	if legacy {
		if len(entries) > 0xff {
			return nil, ErrLengthOverflow
		}
		out := make([]byte, 1+len(entries)*2)
		out[0] = byte(len(entries))
		for i, e := range entries {
			out[1+i*2] = byte(e.Biome)
			out[1+i*2+1] = e.Weight
		}
		return out, nil
	}
	if len(entries) > 0xffff {
		return nil, ErrLengthOverflow
	}
	out := make([]byte, 2+len(entries)*3)
	binary.LittleEndian.PutUint16(out, uint16(len(entries)))
	for i, e := range entries {
		binary.LittleEndian.PutUint16(out[2+i*3:], e.Biome)
		out[2+i*3+2] = e.Weight
	}
	return out, nil
}
