package mcdb

import "github.com/df-mc/mcdbcodec/internal"

// LegacyTerrain is the pre-palette subchunk-blocks layout: flat byte block
// ids plus three nibble planes and a column heightmap/biome tail, all
// indexed in YZX order within the subchunk (XZY for the heightmap).
type LegacyTerrain struct {
	BlockIDs   [32768]byte
	Metadata   internal.NibbleArray
	SkyLight   internal.NibbleArray
	BlockLight internal.NibbleArray
	Heightmap  [256]byte
	// Biomes holds one id byte followed by an RGB triple per column.
	Biomes [256][4]byte
}

const legacyTerrainSize = 32768 + 16384 + 16384 + 16384 + 256 + 1024

// ParseLegacyTerrain reads the fixed 83,200-byte LegacyTerrain record.
func ParseLegacyTerrain(b []byte) (LegacyTerrain, error) {
	if len(b) != legacyTerrainSize {
		return LegacyTerrain{}, ErrStructuralMismatch
	}
	var t LegacyTerrain
	off := 0
	copy(t.BlockIDs[:], b[off:off+32768])
	off += 32768
	t.Metadata = internal.NibbleArrayFromBytes(append([]byte(nil), b[off:off+16384]...))
	off += 16384
	t.SkyLight = internal.NibbleArrayFromBytes(append([]byte(nil), b[off:off+16384]...))
	off += 16384
	t.BlockLight = internal.NibbleArrayFromBytes(append([]byte(nil), b[off:off+16384]...))
	off += 16384
	copy(t.Heightmap[:], b[off:off+256])
	off += 256
	for i := 0; i < 256; i++ {
		copy(t.Biomes[i][:], b[off+i*4:off+i*4+4])
	}
	return t, nil
}

// SerializeLegacyTerrain writes t back to its fixed-length form.
func SerializeLegacyTerrain(t LegacyTerrain) []byte {
	out := make([]byte, legacyTerrainSize)
	off := 0
	copy(out[off:], t.BlockIDs[:])
	off += 32768
	copy(out[off:], t.Metadata.Bytes())
	off += 16384
	copy(out[off:], t.SkyLight.Bytes())
	off += 16384
	copy(out[off:], t.BlockLight.Bytes())
	off += 16384
	copy(out[off:], t.Heightmap[:])
	off += 256
	for i, c := range t.Biomes {
		copy(out[off+i*4:], c[:])
	}
	return out
}
