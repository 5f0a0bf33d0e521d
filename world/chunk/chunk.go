// Package chunk implements the palettized block- and biome-storage codec:
// bit-packed 4096-cell layers resolved through a deduplicated value palette,
// and the sub-chunk/chunk containers that group those layers across a
// dimension's vertical range.
package chunk

import "github.com/df-mc/mcdbcodec/world/cube"

// SubChunk is a single 16x16x16 vertical slice of a Chunk: one or more
// block-layer PalettedStorages (layer 0 is the primary block layer, further
// layers hold waterlogging and other overlapping block data) plus the
// version byte the wire format for it was read with.
type SubChunk struct {
	version  byte
	air      uint32
	storages []*PalettedStorage
}

// NewSubChunk returns an empty SubChunk whose single block layer is filled
// entirely with air, identified by the air palette entry passed.
func NewSubChunk(air uint32) *SubChunk {
	return &SubChunk{
		version:  SubChunkVersion,
		air:      air,
		storages: []*PalettedStorage{NewPalettedStorage([cellCount]uint16{}, []any{air})},
	}
}

// SubChunkVersion is the sub-chunk format version this package writes: the
// "up to 256 layers, explicit stored Y index" variant.
const SubChunkVersion = 9

// Layers returns the block-layer storages of the sub-chunk, in wire order.
func (s *SubChunk) Layers() []*PalettedStorage { return s.storages }

// Layer returns the i'th block layer, or nil if the sub-chunk has fewer
// layers than i+1.
func (s *SubChunk) Layer(i int) *PalettedStorage {
	if i < 0 || i >= len(s.storages) {
		return nil
	}
	return s.storages[i]
}

// SetLayers replaces the sub-chunk's block layers wholesale.
func (s *SubChunk) SetLayers(layers []*PalettedStorage) { s.storages = layers }

// Chunk is a full vertical column of sub-chunks, plus its biome layers (one
// per sub-chunk slot) and block height range.
type Chunk struct {
	r   cube.Range
	air uint32

	sub    []*SubChunk
	biomes []*PalettedStorage
}

// New returns an empty Chunk covering the vertical range r, with every
// sub-chunk's block layer filled with air and every biome layer filled with
// biome id 0.
func New(air uint32, r cube.Range) *Chunk {
	n := subChunkCount(r)
	c := &Chunk{r: r, air: air, sub: make([]*SubChunk, n), biomes: make([]*PalettedStorage, n)}
	for i := range c.sub {
		c.sub[i] = NewSubChunk(air)
		c.biomes[i] = NewPalettedStorage([cellCount]uint16{}, []any{uint32(0)})
	}
	return c
}

func subChunkCount(r cube.Range) int { return (r.Max()-r.Min())>>4 + 1 }

// Range returns the vertical range the chunk covers.
func (c *Chunk) Range() cube.Range { return c.r }

// Sub returns the sub-chunk at the given index (0 is the bottom-most
// sub-chunk of the chunk's range).
func (c *Chunk) Sub(index int) *SubChunk {
	if index < 0 || index >= len(c.sub) {
		return nil
	}
	return c.sub[index]
}

// SetSub replaces the sub-chunk at index.
func (c *Chunk) SetSub(index int, s *SubChunk) {
	if index >= 0 && index < len(c.sub) {
		c.sub[index] = s
	}
}

// SubCount returns the number of sub-chunk slots in the chunk.
func (c *Chunk) SubCount() int { return len(c.sub) }

// Biome returns the biome storage for the sub-chunk at index.
func (c *Chunk) Biome(index int) *PalettedStorage {
	if index < 0 || index >= len(c.biomes) {
		return nil
	}
	return c.biomes[index]
}

// SetBiome sets the biome at an absolute (x, y, z) position within the
// chunk, where x, z are in 0..16 and y is an absolute world height.
func (c *Chunk) SetBiome(x uint8, y int16, z uint8, biome uint32) {
	index := subChunkIndexForY(c.r, y)
	if index < 0 || index >= len(c.biomes) {
		return
	}
	ly := uint8(int(y) & 0xf)
	flat := int(ly)<<8 | int(z)<<4 | int(x)
	c.biomes[index] = withValueAt(c.biomes[index], flat, biome)
}

func subChunkIndexForY(r cube.Range, y int16) int {
	return (int(y) - r.Min()) >> 4
}

// withValueAt returns a PalettedStorage identical to p but with the value at
// flat index i replaced by v, growing the palette if v is new.
func withValueAt(p *PalettedStorage, i int, v any) *PalettedStorage {
	values := make([]any, cellCount)
	for j := 0; j < cellCount; j++ {
		values[j] = p.At(j)
	}
	values[i] = v
	palette := make([]any, 0, 8)
	seen := make(map[any]uint16)
	indices := [cellCount]uint16{}
	for j, val := range values {
		idx, ok := seen[val]
		if !ok {
			idx = uint16(len(palette))
			palette = append(palette, val)
			seen[val] = idx
		}
		indices[j] = idx
	}
	return NewPalettedStorage(indices, palette)
}
