package mcdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/mcdbcodec/world/nbt"
)

var (
	// ErrIncorrectHash is returned when a dictionary entry's stored
	// fingerprint disagrees with its recomputed value.
	ErrIncorrectHash = errors.New("mcdb: metadata entry hash mismatch")
	// ErrDuplicateHash is returned when two entries share a fingerprint.
	ErrDuplicateHash = errors.New("mcdb: duplicate metadata fingerprint")
	// ErrExcessData is returned when bytes remain after the declared entry
	// count has been consumed.
	ErrExcessData = errors.New("mcdb: trailing bytes after metadata dictionary")
	// ErrNoHeader is returned when a payload is shorter than its fixed
	// header: the metadata dictionary's 4-byte count, or level.dat's 8-byte
	// version/length header.
	ErrNoHeader = errors.New("mcdb: payload shorter than its header")
)

// MetaDataDictionary is an ordered mapping from a 64-bit fingerprint to the
// normalized compound it was computed from.
type MetaDataDictionary struct {
	keys   []uint64
	values map[uint64]*nbt.Compound
}

// NewMetaDataDictionary returns an empty dictionary.
func NewMetaDataDictionary() *MetaDataDictionary {
	return &MetaDataDictionary{values: make(map[uint64]*nbt.Compound)}
}

// Get returns the compound stored under fingerprint, if any.
func (d *MetaDataDictionary) Get(fingerprint uint64) (*nbt.Compound, bool) {
	c, ok := d.values[fingerprint]
	return c, ok
}

// Contains reports whether fingerprint is present.
func (d *MetaDataDictionary) Contains(fingerprint uint64) bool {
	_, ok := d.values[fingerprint]
	return ok
}

// Len returns the number of entries in the dictionary.
func (d *MetaDataDictionary) Len() int { return len(d.keys) }

// Fingerprints returns the dictionary's keys in insertion order.
func (d *MetaDataDictionary) Fingerprints() []uint64 { return d.keys }

// Insert computes c's fingerprint (normalizing a clone of c in the
// process) and stores it, returning the fingerprint. Re-inserting an
// equal compound is idempotent.
func (d *MetaDataDictionary) Insert(c *nbt.Compound) (uint64, error) {
	fp, err := Fingerprint(c)
	if err != nil {
		return 0, err
	}
	if _, exists := d.values[fp]; !exists {
		d.keys = append(d.keys, fp)
	}
	d.values[fp] = c
	return fp, nil
}

// Fingerprint computes the metadata dictionary's hash for c: recursively
// sort every compound's keys (lists are left in their input order), encode
// the result with no compression and the empty root name in the network
// little-endian dialect, then xxHash64 the resulting bytes with seed 0.
func Fingerprint(c *nbt.Compound) (uint64, error) {
	sorted := c.Clone().Sort()
	buf := new(bytes.Buffer)
	enc := nbt.NewEncoderWithEncoding(buf, nbt.NetworkLittleEndian)
	if err := enc.EncodeCompound("", sorted); err != nil {
		return 0, fmt.Errorf("mcdb: fingerprint encode: %w", err)
	}
	return xxhash.Sum64(buf.Bytes()), nil
}

// ParseMetaDataDictionary reads a LevelChunkMetaDataDictionary record: a u32
// count followed by that many (u64 fingerprint, named compound) entries.
// Every entry's recomputed fingerprint must match its stored key.
func ParseMetaDataDictionary(b []byte) (*MetaDataDictionary, error) {
	if len(b) < 4 {
		return nil, ErrNoHeader
	}
	count := binary.LittleEndian.Uint32(b)
	buf := bytes.NewBuffer(b[4:])
	d := NewMetaDataDictionary()
	for i := uint32(0); i < count; i++ {
		if buf.Len() < 8 {
			return nil, fmt.Errorf("mcdb: metadata entry %d: %w", i, ErrStructuralMismatch)
		}
		var keyBytes [8]byte
		if _, err := buf.Read(keyBytes[:]); err != nil {
			return nil, err
		}
		key := binary.LittleEndian.Uint64(keyBytes[:])

		dec := nbt.NewDecoderWithEncoding(buf, nbt.LittleEndian)
		c, _, err := dec.DecodeCompound()
		if err != nil {
			return nil, fmt.Errorf("mcdb: metadata entry %d: %w", i, err)
		}

		fp, err := Fingerprint(c)
		if err != nil {
			return nil, err
		}
		if fp != key {
			return nil, fmt.Errorf("mcdb: metadata entry %d: %w", i, ErrIncorrectHash)
		}
		if d.Contains(key) {
			return nil, fmt.Errorf("mcdb: metadata entry %d: %w", i, ErrDuplicateHash)
		}
		d.keys = append(d.keys, key)
		d.values[key] = c
	}
	if buf.Len() > 0 {
		return nil, ErrExcessData
	}
	return d, nil
}

// SerializeMetaDataDictionary writes d back to its wire form.
func SerializeMetaDataDictionary(d *MetaDataDictionary, opts Options) ([]byte, error) {
	n := uint64(len(d.keys))
	if n > 0xffffffff {
		if opts.LengthPolicy == LengthPolicyError {
			return nil, ErrLengthOverflow
		}
		n = 0xffffffff
	}
	buf := new(bytes.Buffer)
	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, uint32(n))
	buf.Write(count)
	for _, key := range d.keys {
		var keyBytes [8]byte
		binary.LittleEndian.PutUint64(keyBytes[:], key)
		buf.Write(keyBytes[:])
		enc := nbt.NewEncoderWithEncoding(buf, nbt.LittleEndian)
		if err := enc.EncodeCompound("", d.values[key]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
