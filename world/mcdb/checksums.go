package mcdb

import "encoding/binary"

// ChecksumKind identifies which record a Checksums entry covers.
type ChecksumKind uint8

const (
	ChecksumData2D ChecksumKind = iota
	ChecksumSubChunkBlocks
	ChecksumBlockEntities
	ChecksumEntities
)

// ChecksumEntry is one (tag, subtag, hash) triple from a Checksums record.
// SubChunkY is only meaningful when Kind is ChecksumSubChunkBlocks.
type ChecksumEntry struct {
	Kind      ChecksumKind
	SubChunkY int8
	Hash      uint64
}

func checksumTagSubtag(k ChecksumKind, y int8) (tag uint16, subtag int8) {
	switch k {
	case ChecksumData2D:
		return uint16(TagData2D), 0
	case ChecksumSubChunkBlocks:
		return uint16(TagSubChunkPrefix), y
	case ChecksumBlockEntities:
		return uint16(TagBlockEntity), 0
	case ChecksumEntities:
		return uint16(TagEntity), 0
	default:
		return 0, 0
	}
}

func checksumKindFor(tag uint16, subtag int8) (ChecksumKind, bool) {
	switch {
	case tag == uint16(TagData2D) && subtag == 0:
		return ChecksumData2D, true
	case tag == uint16(TagSubChunkPrefix):
		return ChecksumSubChunkBlocks, true
	case tag == uint16(TagBlockEntity) && subtag == 0:
		return ChecksumBlockEntities, true
	case tag == uint16(TagEntity) && subtag == 0:
		return ChecksumEntities, true
	default:
		return 0, false
	}
}

const checksumEntrySize = 2 + 1 + 8

// ParseChecksums reads a Checksums record: a u32 count followed by that many
// (u16 tag, i8 subtag, u64 xxHash64) entries.
func ParseChecksums(b []byte) ([]ChecksumEntry, error) {
	if len(b) < 4 {
		return nil, ErrStructuralMismatch
	}
	count := binary.LittleEndian.Uint32(b)
	rest := b[4:]
	if uint64(len(rest)) != uint64(count)*checksumEntrySize {
		return nil, ErrStructuralMismatch
	}
	out := make([]ChecksumEntry, count)
	for i := range out {
		e := rest[i*checksumEntrySize:]
		tag := binary.LittleEndian.Uint16(e[0:2])
		subtag := int8(e[2])
		kind, ok := checksumKindFor(tag, subtag)
		if !ok {
			return nil, ErrUnknownChecksumTag
		}
		out[i] = ChecksumEntry{Kind: kind, SubChunkY: subtag, Hash: binary.LittleEndian.Uint64(e[3:11])}
	}
	return out, nil
}

// SerializeChecksums writes entries as a Checksums record. If the entry
// count overflows u32, the configured LengthPolicy decides whether to fail
// or saturate the written count to u32::MAX.
func SerializeChecksums(entries []ChecksumEntry, opts Options) ([]byte, error) {
	count := uint64(len(entries))
	written := count
	if count > 0xffffffff {
		if opts.LengthPolicy == LengthPolicyError {
			return nil, ErrLengthOverflow
		}
		written = 0xffffffff
	}
	out := make([]byte, 4+len(entries)*checksumEntrySize)
	binary.LittleEndian.PutUint32(out, uint32(written))
	for i, ent := range entries {
		e := out[4+i*checksumEntrySize:]
		tag, subtag := checksumTagSubtag(ent.Kind, ent.SubChunkY)
		binary.LittleEndian.PutUint16(e[0:2], tag)
		e[2] = byte(subtag)
		binary.LittleEndian.PutUint64(e[3:11], ent.Hash)
	}
	return out, nil
}
