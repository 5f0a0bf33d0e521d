// Package internal holds the primitive integer, float, string and bit-level
// codecs shared by the nbt, chunk and mcdb packages. As an internal package
// it cannot be imported from outside this module.
package internal

import (
	"errors"
	"io"
)

// ErrShortInput is returned whenever a reader runs out of bytes before a
// primitive value could be fully decoded.
var ErrShortInput = errors.New("internal: short input")

// ErrVarintTooLong is returned when a network little-endian varint does not
// terminate within its maximum group count.
var ErrVarintTooLong = errors.New("internal: varint exceeds maximum length")

// ReadUint8 reads a single byte from r.
func ReadUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapShort(err)
	}
	return b[0], nil
}

// ReadUint16 reads a 16-bit unsigned integer from r in the byte order bo.
func ReadUint16(r io.Reader, bo ByteOrder) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapShort(err)
	}
	return bo.Uint16(b[:]), nil
}

// ReadUint32 reads a 32-bit unsigned integer from r in the byte order bo.
func ReadUint32(r io.Reader, bo ByteOrder) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapShort(err)
	}
	return bo.Uint32(b[:]), nil
}

// ReadUint64 reads a 64-bit unsigned integer from r in the byte order bo.
func ReadUint64(r io.Reader, bo ByteOrder) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapShort(err)
	}
	return bo.Uint64(b[:]), nil
}

// WriteUint8 appends a single byte to w.
func WriteUint8(w io.ByteWriter, v uint8) error {
	return w.WriteByte(v)
}

// WriteUint16 appends a 16-bit unsigned integer to w in the byte order bo.
func WriteUint16(w io.Writer, bo ByteOrder, v uint16) error {
	var b [2]byte
	bo.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteUint32 appends a 32-bit unsigned integer to w in the byte order bo.
func WriteUint32(w io.Writer, bo ByteOrder, v uint32) error {
	var b [4]byte
	bo.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteUint64 appends a 64-bit unsigned integer to w in the byte order bo.
func WriteUint64(w io.Writer, bo ByteOrder, v uint64) error {
	var b [8]byte
	bo.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func wrapShort(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortInput
	}
	return err
}
