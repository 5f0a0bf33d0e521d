package mcdb

// Fidelity selects between the two normalization modes a store can apply.
type Fidelity uint8

const (
	// BitPerfect preserves every wire-visible byte: insertion order of every
	// map, the exact root name of every NBT tree, trailing padding bits in
	// palettized storage, and encoder-chosen orderings the wire permits
	// freedom in.
	BitPerfect Fidelity = iota
	// Semantic normalizes wire-visible-but-redundant bytes: it sorts ordered
	// sets the source game is observed to sort (AABB volume maps, border
	// blocks), clears root names, and may discard padding bits. Hashes
	// (metadata fingerprint, checksums) are always computed over the
	// normalized form regardless of fidelity.
	Semantic
)

// LengthPolicy selects what happens when a length field (a record's element
// count, or a dictionary's entry count) doesn't fit in its wire width.
type LengthPolicy uint8

const (
	// LengthPolicyError fails the serialize call with ErrLengthOverflow.
	LengthPolicyError LengthPolicy = iota
	// LengthPolicySaturate clamps the written length to the field's maximum
	// representable value instead of failing. Readers that later trust the
	// written count over the actual element count will disagree with the
	// writer; this policy exists only for compatibility with hosts that
	// accept that tradeoff.
	LengthPolicySaturate
)

// ElisionPolicy selects how a key's optional dimension bytes are written,
// that keys carry.
type ElisionPolicy uint8

const (
	// AlwaysWrite writes the dimension bytes for every key, including the
	// Overworld.
	AlwaysWrite ElisionPolicy = iota
	// AlwaysElide never writes dimension bytes for the Overworld, and always
	// writes them otherwise.
	AlwaysElide
	// MatchElision preserves the dimension-byte presence passed to ChunkKey
	// as present (as reported by ParseChunkKeyPrefix), round-tripping an
	// input key's elision choice exactly; with none passed it behaves like
	// AlwaysElide.
	MatchElision
)

// Options bundles the fidelity/policy knobs threaded through every record's
// Parse/Serialize pair.
type Options struct {
	Fidelity     Fidelity
	LengthPolicy LengthPolicy
	Elision      ElisionPolicy
}

// DefaultOptions is BitPerfect fidelity, erroring length overflows, and
// preserving whatever elision an input key already has.
var DefaultOptions = Options{Fidelity: BitPerfect, LengthPolicy: LengthPolicyError, Elision: MatchElision}
