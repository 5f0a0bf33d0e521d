package mcdb

import (
	"encoding/binary"
	"fmt"

	"github.com/df-mc/mcdbcodec/world"
)

// Tag is the one-byte record-shape discriminator that follows a chunk
// coordinate (and optional dimension) in a chunk-scoped key. Values mirror
// the publicly documented Bedrock LevelDB key tags; the four the checksums
// record's own contract names explicitly (45, 47, 49, 50) are load-bearing
// and match that table exactly, the remainder follow the same documented
// numbering.
type Tag byte

const (
	TagData3D              Tag = 43
	TagVersion             Tag = 44
	TagData2D              Tag = 45
	TagData2DLegacy        Tag = 46
	TagSubChunkPrefix      Tag = 47
	TagLegacyTerrain       Tag = 48
	TagBlockEntity         Tag = 49
	TagEntity              Tag = 50
	TagPendingTicks        Tag = 51
	TagLegacyBlockExtra    Tag = 52
	TagBiomeState          Tag = 53
	TagFinalizedState      Tag = 54
	TagBorderBlocks        Tag = 56
	TagHardcodedSpawnAreas Tag = 57
	TagChecksums           Tag = 59
	TagBlendingData        Tag = 64
	TagMetaDataHash        Tag = 67
	TagActorDigestVersion  Tag = 65

	// TagVersionOld is the pre-1.16 chunk version tag, tried as a fallback
	// when TagVersion is absent on load.
	TagVersionOld Tag = 0x76
)

// Key-layout constants for flat (non-coordinate) records.
const (
	KeyFlatWorldLayers = "game_flatworldlayers"
	actorPrefix        = "actorprefix"
	digestPrefix       = "digp"
	localPlayerKey     = "~local_player"
)

// ErrUnrecognizedKey is returned by the key parser when the tag byte (or
// flat identifier) doesn't correspond to any record shape this catalog
// knows.
type ErrUnrecognizedKey struct {
	Key []byte
}

func (e *ErrUnrecognizedKey) Error() string {
	return fmt.Sprintf("mcdb: unrecognized key %x", e.Key)
}

// UnrecognizedValueError is returned when a key's tag is known but its value
// bytes don't parse as that record shape; the caller can use Raw to preserve
// the original bytes instead of discarding them.
type UnrecognizedValueError struct {
	Key []byte
	Raw []byte
	Err error
}

func (e *UnrecognizedValueError) Error() string {
	return fmt.Sprintf("mcdb: unrecognized value for key %x: %v", e.Key, e.Err)
}

func (e *UnrecognizedValueError) Unwrap() error { return e.Err }

// ChunkKey builds the fixed-length coordinate (+ optional dimension) prefix
// shared by every chunk-scoped key, applying policy to decide whether
// dimension bytes are present. present, if non-nil, is the dimension
// presence observed on an input key and is only consulted under
// MatchElision.
func ChunkKey(pos world.ChunkPos, dim world.DimensionIdentity, policy ElisionPolicy, present *bool) []byte {
	write := !dim.IsOverworld()
	switch policy {
	case AlwaysWrite:
		write = true
	case AlwaysElide:
		write = !dim.IsOverworld()
	case MatchElision:
		if present != nil {
			write = *present
		}
	}
	b := make([]byte, 8, 12)
	binary.LittleEndian.PutUint32(b[0:4], uint32(pos.X()))
	binary.LittleEndian.PutUint32(b[4:8], uint32(pos.Z()))
	if write {
		b = binary.LittleEndian.AppendUint32(b, dim.EncodeNumeric())
	}
	return b
}

// ParseChunkKeyPrefix splits a chunk-scoped key into its coordinate,
// dimension (Overworld if elided) and tag suffix. dimensionPresent reports
// whether the 12-byte (vs 8-byte) form was used, for MatchElision
// round-tripping.
func ParseChunkKeyPrefix(key []byte) (pos world.ChunkPos, dim world.DimensionIdentity, dimensionPresent bool, rest []byte, ok bool) {
	if len(key) < 9 {
		return pos, dim, false, nil, false
	}
	x := int32(binary.LittleEndian.Uint32(key[0:4]))
	z := int32(binary.LittleEndian.Uint32(key[4:8]))
	pos = world.ChunkPos{x, z}
	if len(key) >= 13 {
		d := binary.LittleEndian.Uint32(key[8:12])
		return pos, world.ParseNumericDimension(d), true, key[12:], true
	}
	return pos, world.DimIdentityOverworld, false, key[8:], true
}

func actorDigestKey(pos world.ChunkPos, dim world.DimensionIdentity, policy ElisionPolicy) []byte {
	return append([]byte(digestPrefix), ChunkKey(pos, dim, policy, nil)...)
}

func actorKey(id [8]byte) []byte {
	return append([]byte(actorPrefix), id[:]...)
}
