package mcdb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/df-mc/mcdbcodec/world/chunk"
)

// Data3D is the 3D chunk record: a [x][z]-indexed heightmap plus N
// palettized biome subvolumes, one per 16-block slice of the dimension's
// height range.
type Data3D struct {
	Heightmap [16][16]uint16
	Subvols   []*chunk.PalettedStorage
}

// ParseData3D reads a Data3D record. n is the subvolume count, (height
// range / 16), carried out-of-band by the caller.
func ParseData3D(b []byte, n int) (Data3D, error) {
	if len(b) < 512 {
		return Data3D{}, ErrStructuralMismatch
	}
	var d Data3D
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			d.Heightmap[x][z] = binary.LittleEndian.Uint16(b[(x*16+z)*2:])
		}
	}
	buf := bytes.NewBuffer(b[512:])
	d.Subvols = make([]*chunk.PalettedStorage, n)
	for i := 0; i < n; i++ {
		s, err := chunk.DecodeBiomeSubvolume(buf, chunk.NetworkEncoding)
		if err != nil {
			return Data3D{}, fmt.Errorf("mcdb: decode biome subvolume %d: %w", i, err)
		}
		d.Subvols[i] = s
	}
	return d, nil
}

// SerializeData3D writes d back to its wire form.
func SerializeData3D(d Data3D) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(512)
	header := make([]byte, 512)
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			binary.LittleEndian.PutUint16(header[(x*16+z)*2:], d.Heightmap[x][z])
		}
	}
	buf.Write(header)
	for _, s := range d.Subvols {
		chunk.EncodeBiomeSubvolume(buf, s, chunk.NetworkEncoding)
	}
	return buf.Bytes()
}
