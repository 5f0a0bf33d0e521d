package internal

import (
	"io"
)

// ReadVarint32 reads a zig-zag encoded, 7-bit-group variable-length int32 as
// used by the network little-endian dialect for signed 32-bit NBT tags. Each
// group's MSB signals continuation; the remaining 7 bits are the payload,
// least significant group first.
func ReadVarint32(r io.ByteReader) (int32, error) {
	u, err := readVaruint(r, 5)
	if err != nil {
		return 0, err
	}
	return zigzagDecode32(uint32(u)), nil
}

// WriteVarint32 writes v using the zig-zag varint dialect described by
// ReadVarint32.
func WriteVarint32(w io.ByteWriter, v int32) error {
	return writeVaruint(w, uint64(zigzagEncode32(v)))
}

// ReadVarint64 is the 64-bit counterpart of ReadVarint32.
func ReadVarint64(r io.ByteReader) (int64, error) {
	u, err := readVaruint(r, 10)
	if err != nil {
		return 0, err
	}
	return zigzagDecode64(u), nil
}

// WriteVarint64 is the 64-bit counterpart of WriteVarint32.
func WriteVarint64(w io.ByteWriter, v int64) error {
	return writeVaruint(w, zigzagEncode64(v))
}

// ReadVaruint32 reads an unsigned variable-length 32-bit integer (no zig-zag),
// the encoding used for NBT string lengths in the network dialect (list and
// array lengths there use the zig-zag ReadVarint32 form).
func ReadVaruint32(r io.ByteReader) (uint32, error) {
	u, err := readVaruint(r, 5)
	return uint32(u), err
}

// WriteVaruint32 writes an unsigned variable-length 32-bit integer.
func WriteVaruint32(w io.ByteWriter, v uint32) error {
	return writeVaruint(w, uint64(v))
}

func readVaruint(r io.ByteReader, maxGroups int) (uint64, error) {
	var v uint64
	for i := 0; i < maxGroups; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, wrapShort(err)
		}
		v |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrVarintTooLong
}

func writeVaruint(w io.ByteWriter, v uint64) error {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
		if v == 0 {
			return nil
		}
	}
}

func zigzagEncode32(v int32) uint32 { return uint32((v << 1) ^ (v >> 31)) }
func zigzagDecode32(v uint32) int32 { return int32(v>>1) ^ -int32(v&1) }

func zigzagEncode64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func zigzagDecode64(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }
