package mcdb

import "encoding/binary"

// Data2D is the pre-1.18 2D chunk record: a 256-entry heightmap plus a
// 256-entry biome id layer. Original carries 8-bit biome ids, New carries
// 16-bit ones; Legacy additionally carries a per-column RGB biome color.
type Data2D struct {
	Heightmap [256]uint16
	Biomes    [256]uint16
	// Colors is only populated by ParseData2DLegacy.
	Colors [256][3]byte
}

// ParseData2DOriginal reads the pre-1.18 Data2D record (u8 biome ids).
func ParseData2DOriginal(b []byte) (Data2D, error) {
	if len(b) != 512+256 {
		return Data2D{}, ErrStructuralMismatch
	}
	var d Data2D
	for i := 0; i < 256; i++ {
		d.Heightmap[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	for i := 0; i < 256; i++ {
		d.Biomes[i] = uint16(b[512+i])
	}
	return d, nil
}

// SerializeData2DOriginal writes d in the u8-biome-id form.
func SerializeData2DOriginal(d Data2D) []byte {
	out := make([]byte, 512+256)
	for i, h := range d.Heightmap {
		binary.LittleEndian.PutUint16(out[i*2:], h)
	}
	for i, id := range d.Biomes {
		out[512+i] = byte(id)
	}
	return out
}

// ParseData2DNew reads the Data2D record with u16 biome ids.
func ParseData2DNew(b []byte) (Data2D, error) {
	if len(b) != 512+512 {
		return Data2D{}, ErrStructuralMismatch
	}
	var d Data2D
	for i := 0; i < 256; i++ {
		d.Heightmap[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	for i := 0; i < 256; i++ {
		d.Biomes[i] = binary.LittleEndian.Uint16(b[512+i*2:])
	}
	return d, nil
}

// SerializeData2DNew writes d in the u16-biome-id form.
func SerializeData2DNew(d Data2D) []byte {
	out := make([]byte, 512+512)
	for i, h := range d.Heightmap {
		binary.LittleEndian.PutUint16(out[i*2:], h)
	}
	for i, id := range d.Biomes {
		binary.LittleEndian.PutUint16(out[512+i*2:], id)
	}
	return out
}

// ParseData2DLegacy reads the pre-1.0 Legacy2D record (u8 biome id plus RGB
// color per column).
func ParseData2DLegacy(b []byte) (Data2D, error) {
	if len(b) != 512+256+256*3 {
		return Data2D{}, ErrStructuralMismatch
	}
	var d Data2D
	for i := 0; i < 256; i++ {
		d.Heightmap[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	for i := 0; i < 256; i++ {
		d.Biomes[i] = uint16(b[512+i])
	}
	rest := b[512+256:]
	for i := 0; i < 256; i++ {
		copy(d.Colors[i][:], rest[i*3:i*3+3])
	}
	return d, nil
}

// SerializeData2DLegacy writes d in the legacy biome-color form.
func SerializeData2DLegacy(d Data2D) []byte {
	out := make([]byte, 512+256+256*3)
	for i, h := range d.Heightmap {
		binary.LittleEndian.PutUint16(out[i*2:], h)
	}
	for i, id := range d.Biomes {
		out[512+i] = byte(id)
	}
	rest := out[512+256:]
	for i, c := range d.Colors {
		copy(rest[i*3:], c[:])
	}
	return out
}
