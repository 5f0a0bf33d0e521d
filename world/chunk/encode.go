package chunk

import (
	"bytes"

	"github.com/df-mc/mcdbcodec/world/nbt"
)

// SerialisedData holds the per-record byte slices a disk-encoded Chunk is
// split across: one 2D/3D biome record and one record per non-empty
// sub-chunk slot.
type SerialisedData struct {
	Biomes    []byte
	SubChunks [][]byte
}

// NetworkEncode serialises c into the network (runtime) wire dialect: one
// frame per sub-chunk slot, followed by the chunk's biome layers and any
// trailing block-entity compounds.
func NetworkEncode(c *Chunk, blockNBTs []map[string]any) []byte {
	buf := new(bytes.Buffer)
	for i := 0; i < len(c.sub); i++ {
		encodeSubChunkAt(buf, c.sub[i], byte(i+(c.r.Min()>>4)), NetworkEncoding)
	}
	encodeBiomes(buf, c, NetworkEncoding)
	_ = encodeConcatenatedCompounds(buf, nbt.NetworkLittleEndian, blockNBTs)
	return buf.Bytes()
}

// DiskEncode serialises c into the persistent (disk) wire dialect, returning
// one byte slice per record the storage layer addresses separately.
func DiskEncode(c *Chunk) SerialisedData {
	biomeBuf := new(bytes.Buffer)
	encodeBiomes(biomeBuf, c, DiskEncoding)

	subs := make([][]byte, len(c.sub))
	for i, sub := range c.sub {
		if sub == nil {
			continue
		}
		buf := new(bytes.Buffer)
		encodeSubChunkAt(buf, sub, byte(i+(c.r.Min()>>4)), DiskEncoding)
		subs[i] = buf.Bytes()
	}
	return SerialisedData{Biomes: biomeBuf.Bytes(), SubChunks: subs}
}

// encodeSubChunk writes sub with a version 9 Y index of 0.
func encodeSubChunk(buf *bytes.Buffer, sub *SubChunk, e Encoding) {
	encodeSubChunkAt(buf, sub, 0, e)
}

// encodeSubChunkAt writes sub; version 9 stores yIndex, the absolute
// sub-chunk Y index, after the storage count.
func encodeSubChunkAt(buf *bytes.Buffer, sub *SubChunk, yIndex byte, e Encoding) {
	ver := sub.version
	if ver == 0 {
		ver = SubChunkVersion
	}
	buf.WriteByte(ver)
	switch ver {
	case 1:
		_ = encodePalettedStorage(buf, sub.storages[0], e, blockPalette)
		return
	default:
		buf.WriteByte(byte(len(sub.storages)))
		if ver == 9 {
			buf.WriteByte(yIndex)
		}
		for _, storage := range sub.storages {
			_ = encodePalettedStorage(buf, storage, e, blockPalette)
		}
	}
}

func encodeBiomes(buf *bytes.Buffer, c *Chunk, e Encoding) {
	var last *PalettedStorage
	for _, b := range c.biomes {
		if e == NetworkEncoding && last != nil && sameStorage(b, last) {
			buf.WriteByte(0)
			continue
		}
		_ = encodePalettedStorage(buf, b, e, biomePalette)
		last = b
	}
}

func sameStorage(a, b *PalettedStorage) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.bitsPerIndex != b.bitsPerIndex || len(a.palette) != len(b.palette) {
		return false
	}
	for i := range a.words {
		if a.words[i] != b.words[i] {
			return false
		}
	}
	for i := range a.palette {
		if a.palette[i] != b.palette[i] {
			return false
		}
	}
	return true
}

// EncodeBiomeSubvolume writes a single biome-layer PalettedStorage to buf,
// the counterpart of DecodeBiomeSubvolume.
func EncodeBiomeSubvolume(buf *bytes.Buffer, p *PalettedStorage, e Encoding) {
	_ = encodePalettedStorage(buf, p, e, biomePalette)
}

// encodePalettedStorage writes p's header, bit-packed index words and
// palette to buf.
func encodePalettedStorage(buf *bytes.Buffer, p *PalettedStorage, e Encoding, kind paletteKind) error {
	writePaletteHeader(buf, p.bitsPerIndex, e)
	for _, w := range p.words {
		buf.WriteByte(byte(w))
		buf.WriteByte(byte(w >> 8))
		buf.WriteByte(byte(w >> 16))
		buf.WriteByte(byte(w >> 24))
	}
	if p.bitsPerIndex != 0 {
		if err := writePaletteLen(buf, e, len(p.palette)); err != nil {
			return err
		}
	}
	return encodePaletteEntries(buf, e, kind, p.palette)
}

func writePaletteLen(buf *bytes.Buffer, e Encoding, n int) error {
	if e == DiskEncoding {
		buf.WriteByte(byte(n))
		buf.WriteByte(byte(n >> 8))
		buf.WriteByte(byte(n >> 16))
		buf.WriteByte(byte(n >> 24))
		return nil
	}
	return writePaletteInt(buf, e, uint32(n))
}
