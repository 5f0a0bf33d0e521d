package chunk

import (
	"bytes"
	"fmt"

	"github.com/df-mc/mcdbcodec/world/cube"
)

// NetworkDecode decodes the network (runtime) serialised data passed into a
// Chunk. The sub-chunk count passed must be the one carried by the
// surrounding transport frame. Runtime IDs in the returned storages are
// opaque u32 values: resolving them to block states is outside this
// package's scope.
func NetworkDecode(air uint32, data []byte, count int, oldBiomes bool, r cube.Range) (c *Chunk, blockNBTs []map[string]any, err error) {
	c = New(air, r)
	buf := bytes.NewBuffer(data)
	for i := 0; i < count; i++ {
		index := uint8(i)
		c.sub[index], err = decodeSubChunk(buf, c, &index, NetworkEncoding)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk: decode sub chunk %d: %w", i, err)
		}
	}
	if oldBiomes {
		biomes := make([]byte, 256)
		if _, err := buf.Read(biomes); err != nil {
			return nil, nil, fmt.Errorf("chunk: read legacy 2D biomes: %w", err)
		}
		for x := 0; x < 16; x++ {
			for z := 0; z < 16; z++ {
				id := biomes[(x&15)|(z&15)<<4]
				for y := r.Min(); y <= r.Max(); y++ {
					c.SetBiome(uint8(x), int16(y), uint8(z), uint32(id))
				}
			}
		}
	} else if err = decodeBiomes(buf, c, NetworkEncoding); err != nil {
		return nil, nil, err
	}

	if buf.Len() > 0 {
		blockNBTs, err = decodeConcatenatedBlockEntities(buf)
		if err != nil {
			return nil, nil, err
		}
	}
	return c, blockNBTs, nil
}

// DiskDecode decodes the data from a SerialisedData object into a Chunk.
func DiskDecode(data SerialisedData, air uint32, r cube.Range) (*Chunk, error) {
	c := New(air, r)
	if err := decodeBiomes(bytes.NewBuffer(data.Biomes), c, DiskEncoding); err != nil {
		return nil, err
	}
	for i, sub := range data.SubChunks {
		if len(sub) == 0 {
			continue
		}
		index := uint8(i)
		var err error
		if c.sub[index], err = decodeSubChunk(bytes.NewBuffer(sub), c, &index, DiskEncoding); err != nil {
			return nil, fmt.Errorf("chunk: decode sub chunk %d: %w", i, err)
		}
	}
	return c, nil
}

// decodeSubChunk decodes a SubChunk from buf, using e to decode its block
// layers' palettes.
func decodeSubChunk(buf *bytes.Buffer, c *Chunk, index *byte, e Encoding) (*SubChunk, error) {
	ver, err := buf.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	sub := NewSubChunk(c.air)
	sub.version = ver
	switch ver {
	default:
		return nil, fmt.Errorf("unknown sub chunk version %v", ver)
	case 1:
		storage, err := decodePalettedStorage(buf, e, blockPalette)
		if err != nil {
			return nil, err
		}
		sub.storages = []*PalettedStorage{storage}
	case 8, 9:
		storageCount, err := buf.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("read storage count: %w", err)
		}
		if ver == 9 {
			uIndex, err := buf.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("read sub-chunk index: %w", err)
			}
			*index = uint8(int8(uIndex) - int8(c.r.Min()>>4))
		}
		sub.storages = make([]*PalettedStorage, storageCount)
		for i := byte(0); i < storageCount; i++ {
			if sub.storages[i], err = decodePalettedStorage(buf, e, blockPalette); err != nil {
				return nil, err
			}
		}
	}
	return sub, nil
}

// decodeBiomes reads the chunk's biome layers (one per sub-chunk slot) from
// buf, resolving any "copy previous layer" signal against the prior layer.
func decodeBiomes(buf *bytes.Buffer, c *Chunk, e Encoding) error {
	var last *PalettedStorage
	if buf.Len() == 0 {
		return nil
	}
	for i := 0; i < len(c.biomes); i++ {
		b, err := decodePalettedStorage(buf, e, biomePalette)
		if err != nil {
			return fmt.Errorf("decode biome layer %d: %w", i, err)
		}
		if i == 0 && b == nil {
			return fmt.Errorf("first biome layer cannot copy a previous one")
		}
		if b == nil {
			b = last
		} else {
			last = b
		}
		c.biomes[i] = b
	}
	return nil
}

// DecodeBiomeSubvolume decodes a single biome-layer PalettedStorage from
// buf, for callers (such as the Data3D record) that manage their own
// sequence of subvolumes outside of a Chunk.
func DecodeBiomeSubvolume(buf *bytes.Buffer, e Encoding) (*PalettedStorage, error) {
	return decodePalettedStorage(buf, e, biomePalette)
}

// decodePalettedStorage decodes a single PalettedStorage from buf.
func decodePalettedStorage(buf *bytes.Buffer, e Encoding, kind paletteKind) (*PalettedStorage, error) {
	bpi, copyPrevious, _, err := readPaletteHeader(buf, e)
	if err != nil {
		return nil, err
	}
	if copyPrevious {
		return nil, nil
	}
	if bpi == 0x7f {
		return nil, fmt.Errorf("invalid bits-per-index 0x7f")
	}
	if !isValidBitsPerIndex(bpi) {
		return nil, fmt.Errorf("bits-per-index %d: %w", bpi, ErrUnsupportedBitsPerIndex)
	}

	wordCount := wordsForIndices(bpi, cellCount)
	words := make([]uint32, wordCount)
	byteCount := wordCount * 4
	data := buf.Next(byteCount)
	if len(data) != byteCount {
		return nil, fmt.Errorf("not enough index data: expected %d bytes, got %d", byteCount, len(data))
	}
	for i := 0; i < wordCount; i++ {
		words[i] = uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
	}

	if bpi == 0 {
		palette, err := decodePaletteEntries(buf, e, kind, 1)
		if err != nil {
			return nil, err
		}
		return newPackedPalettedStorage(0, nil, palette), nil
	}

	n, err := readPaletteLen(buf, e)
	if err != nil {
		return nil, fmt.Errorf("read palette length: %w", err)
	}
	palette, err := decodePaletteEntries(buf, e, kind, n)
	if err != nil {
		return nil, err
	}
	return newPackedPalettedStorage(bpi, words, palette), nil
}

func readPaletteLen(buf *bytes.Buffer, e Encoding) (int, error) {
	if e == DiskEncoding {
		var b [4]byte
		if _, err := buf.Read(b[:]); err != nil {
			return 0, err
		}
		return int(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24), nil
	}
	v, err := readPaletteInt(buf, e)
	return int(int32(v)), err
}
