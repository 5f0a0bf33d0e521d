package chunk

import (
	"bytes"
	"fmt"

	"github.com/df-mc/mcdbcodec/internal"
	"github.com/df-mc/mcdbcodec/world/nbt"
)

// Encoding selects the wire dialect a PalettedStorage is read from or
// written to: the persistent (disk) dialect stores full block states as NBT
// compounds in its palette, the runtime (network) dialect stores opaque
// varint-packed runtime IDs with no state information at all. Both dialects
// share the same bit-packed index array layout.
type Encoding uint8

const (
	// DiskEncoding is the persistent dialect: palette entries are NBT
	// compounds (little-endian, no compression), the header byte's low bit
	// is always 1 (palette present, never "copy previous").
	DiskEncoding Encoding = iota
	// NetworkEncoding is the runtime dialect as sent over the network:
	// palette entries are zig-zag varint runtime IDs, and a palette of a
	// single biome layer may signal "same as previous layer" by clearing
	// the header byte's low bit.
	NetworkEncoding
	// NetworkPersistentEncoding reads and writes like NetworkEncoding, except
	// that a header byte with its low bit unset is not treated as the "copy
	// previous" signal. No decoder in this package selects it on its own;
	// callers pass it explicitly.
	NetworkPersistentEncoding
)

// paletteKind distinguishes the two palette-entry shapes a storage's
// Encoding can carry: block layers always decode to NBT-compound or
// runtime-ID depending on dialect, biome layers always decode to a bare u32.
type paletteKind uint8

const (
	blockPalette paletteKind = iota
	biomePalette
)

// readPaletteHeader reads a paletted storage's one-byte header and returns
// the bits-per-index and whether this layer signals "copy the previous
// layer's storage" (only meaningful for NetworkEncoding biome layers).
func readPaletteHeader(buf *bytes.Buffer, e Encoding) (bpi int, copyPrevious bool, persistentLayer bool, err error) {
	b, err := buf.ReadByte()
	if err != nil {
		return 0, false, false, fmt.Errorf("chunk: read paletted storage header: %w", err)
	}
	if e == NetworkEncoding && b&1 != 1 {
		return 0, true, false, nil
	}
	persistentLayer = e == DiskEncoding
	return int(b >> 1), false, persistentLayer, nil
}

func writePaletteHeader(buf *bytes.Buffer, bpi int, e Encoding) {
	buf.WriteByte(byte(bpi<<1) | 1)
}

// decodePaletteEntries reads a palette of length n from buf according to e
// and kind.
func decodePaletteEntries(buf *bytes.Buffer, e Encoding, kind paletteKind, n int) ([]any, error) {
	values := make([]any, n)
	for i := range values {
		switch {
		case kind == biomePalette:
			v, err := readPaletteInt(buf, e)
			if err != nil {
				return nil, fmt.Errorf("chunk: read biome palette entry %d: %w", i, err)
			}
			values[i] = v
		case e == DiskEncoding:
			dec := nbt.NewDecoderWithEncoding(buf, nbt.LittleEndian)
			c, _, err := dec.DecodeCompound()
			if err != nil {
				return nil, fmt.Errorf("chunk: read block state palette entry %d: %w", i, err)
			}
			values[i] = c
		default:
			v, err := readPaletteInt(buf, e)
			if err != nil {
				return nil, fmt.Errorf("chunk: read runtime-id palette entry %d: %w", i, err)
			}
			values[i] = v
		}
	}
	return values, nil
}

func readPaletteInt(buf *bytes.Buffer, e Encoding) (uint32, error) {
	if e == DiskEncoding {
		var b [4]byte
		if _, err := buf.Read(b[:]); err != nil {
			return 0, err
		}
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
	}
	v, err := internal.ReadVarint32(buf)
	return uint32(v), err
}

func encodePaletteEntries(buf *bytes.Buffer, e Encoding, kind paletteKind, values []any) error {
	for i, v := range values {
		switch {
		case kind == biomePalette:
			if err := writePaletteInt(buf, e, v.(uint32)); err != nil {
				return fmt.Errorf("chunk: write biome palette entry %d: %w", i, err)
			}
		case e == DiskEncoding:
			c, _ := v.(*nbt.Compound)
			enc := nbt.NewEncoderWithEncoding(buf, nbt.LittleEndian)
			if err := enc.EncodeCompound("", c); err != nil {
				return fmt.Errorf("chunk: write block state palette entry %d: %w", i, err)
			}
		default:
			if err := writePaletteInt(buf, e, v.(uint32)); err != nil {
				return fmt.Errorf("chunk: write runtime-id palette entry %d: %w", i, err)
			}
		}
	}
	return nil
}

func writePaletteInt(buf *bytes.Buffer, e Encoding, v uint32) error {
	if e == DiskEncoding {
		buf.WriteByte(byte(v))
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v >> 16))
		buf.WriteByte(byte(v >> 24))
		return nil
	}
	return internal.WriteVarint32(buf, int32(v))
}
