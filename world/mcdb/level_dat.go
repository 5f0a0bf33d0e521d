package mcdb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/df-mc/mcdbcodec/world/nbt"
)

// LevelDatVersion is the version number this package writes into level.dat's
// header; it is read but never validated strictly on load, since it has
// changed many times across game versions without a corresponding change to
// the payload's shape.
const LevelDatVersion = 9

// LevelDat holds the parsed contents of a world's level.dat file: an 8-byte
// header (format version, payload length) followed by one uncompressed
// little-endian NBT compound.
type LevelDat struct {
	Version int32
	Data    *nbt.Compound
}

// ParseLevelDat reads a level.dat payload: an 8-byte header (i32_le version,
// i32_le payload length) followed by exactly that many bytes of an
// uncompressed little-endian NBT compound.
func ParseLevelDat(b []byte) (LevelDat, error) {
	if len(b) < 8 {
		return LevelDat{}, ErrNoHeader
	}
	version := int32(binary.LittleEndian.Uint32(b[0:4]))
	length := binary.LittleEndian.Uint32(b[4:8])
	payload := b[8:]
	if uint64(len(payload)) != uint64(length) {
		return LevelDat{}, ErrStructuralMismatch
	}
	dec := nbt.NewDecoderWithEncoding(bytes.NewReader(payload), nbt.LittleEndian)
	c, _, err := dec.DecodeCompound()
	if err != nil {
		return LevelDat{}, fmt.Errorf("mcdb: decode level.dat: %w", err)
	}
	return LevelDat{Version: version, Data: c}, nil
}

// SerializeLevelDat writes d back to its 8-byte-header-plus-compound form.
func SerializeLevelDat(d LevelDat) ([]byte, error) {
	payload := new(bytes.Buffer)
	enc := nbt.NewEncoderWithEncoding(payload, nbt.LittleEndian)
	if err := enc.EncodeCompound("", d.Data); err != nil {
		return nil, fmt.Errorf("mcdb: encode level.dat: %w", err)
	}
	out := make([]byte, 8+payload.Len())
	binary.LittleEndian.PutUint32(out[0:4], uint32(d.Version))
	binary.LittleEndian.PutUint32(out[4:8], uint32(payload.Len()))
	copy(out[8:], payload.Bytes())
	return out, nil
}
