package chunk

import (
	"bytes"
	"testing"

	"github.com/df-mc/mcdbcodec/world/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalettedStorageBitsPerIndex(t *testing.T) {
	cases := []struct {
		paletteLen int
		want       int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {16, 4}, {17, 5}, {64, 6}, {65, 8}, {256, 8}, {257, 16},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, bitsPerIndexFor(c.paletteLen), "paletteLen=%d", c.paletteLen)
	}
}

func TestPalettedStorageRoundTrip(t *testing.T) {
	palette := []any{uint32(0), uint32(7), uint32(3)}
	var indices [cellCount]uint16
	indices[0] = 1
	indices[4095] = 2
	indices[100] = 1

	p := NewPalettedStorage(indices, palette)
	assert.Equal(t, uint32(7), p.At(0))
	assert.Equal(t, uint32(3), p.At(4095))
	assert.Equal(t, uint32(0), p.At(1))
	assert.Equal(t, 2, p.BitsPerIndex())
}

func TestSubChunkDiskRoundTrip(t *testing.T) {
	air := uint32(0)
	sub := NewSubChunk(air)
	sub.storages[0] = NewPalettedStorage([cellCount]uint16{}, []any{air, uint32(5)})

	buf := new(bytes.Buffer)
	encodeSubChunk(buf, sub, DiskEncoding)

	c := &Chunk{air: air, r: cube.Range{0, 15}}
	index := byte(0)
	got, err := decodeSubChunk(buf, c, &index, DiskEncoding)
	require.NoError(t, err)
	assert.Equal(t, air, got.Layer(0).At(0))
}

func TestChunkSetBiomeUpdatesLayer(t *testing.T) {
	c := New(0, cube.Range{-64, 319})
	c.SetBiome(1, -60, 2, 9)
	index := subChunkIndexForY(c.r, -60)
	assert.Equal(t, uint32(9), c.Biome(index).At(int(1)|int(2)<<4|int((-60-(-64))&0xf)<<8))
}

func TestDecodePalettedStorageRejectsUnsupportedBitsPerIndex(t *testing.T) {
	// header byte 66 -> bpi = 66>>1 = 33, not in validBitsPerIndex; must
	// error rather than panic dividing by indexesPerWord(33) == 0.
	buf := bytes.NewBuffer([]byte{66})
	_, err := decodePalettedStorage(buf, DiskEncoding, blockPalette)
	require.ErrorIs(t, err, ErrUnsupportedBitsPerIndex)
}

func TestDiskRoundTripChunk(t *testing.T) {
	r := cube.Range{0, 15}
	c := New(0, r)
	c.sub[0].storages[0] = NewPalettedStorage([cellCount]uint16{}, []any{uint32(0), uint32(42)})

	data := DiskEncode(c)
	got, err := DiskDecode(data, 0, r)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.Sub(0).Layer(0).At(0))
}
