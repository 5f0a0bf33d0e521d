package mcdb

import "encoding/binary"

// ActorDigestVersion is the single-byte value stored under
// TagActorDigestVersion, recording which digest layout the chunk's actor
// entries were written with.
type ActorDigestVersion byte

// ParseActorDigestVersion reads an ActorDigestVersion record.
func ParseActorDigestVersion(b []byte) (ActorDigestVersion, error) {
	if len(b) != 1 {
		return 0, ErrStructuralMismatch
	}
	return ActorDigestVersion(b[0]), nil
}

// SerializeActorDigestVersion writes v back to its single-byte form.
func SerializeActorDigestVersion(v ActorDigestVersion) []byte { return []byte{byte(v)} }

// ActorID is the big-endian u32-pair identifier an actor-digest record
// enumerates.
type ActorID [8]byte

// High returns the high 32 bits of the identifier.
func (id ActorID) High() uint32 { return binary.BigEndian.Uint32(id[0:4]) }

// Low returns the low 32 bits of the identifier.
func (id ActorID) Low() uint32 { return binary.BigEndian.Uint32(id[4:8]) }

// ParseActorDigest reads an actor-digest record: N concatenated 8-byte
// big-endian identifiers.
func ParseActorDigest(b []byte) ([]ActorID, error) {
	if len(b)%8 != 0 {
		return nil, ErrStructuralMismatch
	}
	out := make([]ActorID, len(b)/8)
	for i := range out {
		copy(out[i][:], b[i*8:i*8+8])
	}
	return out, nil
}

// SerializeActorDigest writes ids back to their concatenated form.
func SerializeActorDigest(ids []ActorID) []byte {
	out := make([]byte, len(ids)*8)
	for i, id := range ids {
		copy(out[i*8:], id[:])
	}
	return out
}
