package internal

import "encoding/binary"

// ByteOrder abstracts over the three endian dialects the NBT codec and the
// record catalog need: the two classic fixed-width byte orders, and Bedrock's
// "network little-endian" variable-length dialect used by in-memory/network
// NBT payloads.
//
// Every method is a fixed-width read/write for all three values, including
// NetworkLittleEndian: the network dialect's variable-length ints are not
// handled here but by ReadVarint32/64 and WriteVarint32/64 in varint.go.
type ByteOrder interface {
	Uint16([]byte) uint16
	PutUint16([]byte, uint16)
	Uint32([]byte) uint32
	PutUint32([]byte, uint32)
	Uint64([]byte) uint64
	PutUint64([]byte, uint64)
}

// BigEndian is the fixed-width big-endian byte order, used by legacy Java-style
// NBT (not produced by Bedrock itself, but accepted for completeness).
var BigEndian ByteOrder = fixedOrder{binary.BigEndian}

// LittleEndian is the fixed-width little-endian byte order used by disk NBT
// and most record shapes.
var LittleEndian ByteOrder = fixedOrder{binary.LittleEndian}

type fixedOrder struct {
	binary.ByteOrder
}

// NetworkLittleEndian is a stand-in ByteOrder value used only to select the
// network dialect in call sites that branch on an Encoding value; its Uint32/
// Uint64 methods are never used directly because network ints are variable
// length. Use ReadVarint32/64 and WriteVarint32/64 instead.
var NetworkLittleEndian ByteOrder = fixedOrder{binary.LittleEndian}
