package nbt

import "github.com/df-mc/mcdbcodec/internal"

// Encoding selects the byte order (and, for Network, the varint dialect)
// tags are read/written in.
type Encoding uint8

const (
	// LittleEndian is used by disk NBT (level.dat, chunk records).
	LittleEndian Encoding = iota
	// BigEndian is accepted for completeness; Bedrock itself never
	// produces it.
	BigEndian
	// NetworkLittleEndian is used by in-memory/network NBT: Short/Float/
	// Double/ByteArray bytes stay little-endian, but Int/Long and every
	// length prefix become 7-bit group varints: zig-zag for Int/Long and for
	// list/array lengths, unsigned for string lengths.
	NetworkLittleEndian
)

func (e Encoding) byteOrder() internal.ByteOrder {
	switch e {
	case BigEndian:
		return internal.BigEndian
	default:
		return internal.LittleEndian
	}
}

// Compression selects a transparent stream wrapper applied around an
// Encoder/Decoder's underlying reader/writer.
type Compression uint8

const (
	// NoCompression applies no wrapper.
	NoCompression Compression = iota
	// ZlibCompression wraps the stream in a zlib (RFC1950) container.
	ZlibCompression
	// GzipCompression wraps the stream in a gzip container.
	GzipCompression
)

// DefaultDepthLimit is the maximum Compound/List nesting depth enforced when
// no explicit limit is configured.
const DefaultDepthLimit = 512

// Options configures an Encoder or Decoder.
type Options struct {
	// Encoding selects the byte order / varint dialect.
	Encoding Encoding
	// Compression selects a stream wrapper; CompressionLevel is only
	// meaningful when Compression is ZlibCompression.
	Compression Compression
	// CompressionLevel is passed to compress/flate's level parameter; 0
	// selects the package default.
	CompressionLevel int
	// StringEncoding selects how string bytes are interpreted; the zero
	// value is internal.UTF8, Bedrock's own near-universal choice.
	StringEncoding internal.StringEncoding
	// DepthLimit caps Compound/List nesting; 0 selects DefaultDepthLimit.
	DepthLimit int
	// AllowZero permits Decode to return when the stream begins with
	// TagEnd instead of failing as "structural-mismatch"; used by readers
	// that tolerate padding/terminator bytes between concatenated root
	// compounds (see the chunk package's block-entity reader).
	AllowZero bool
	// UncheckedLists disables the list-homogeneity check on Encode. Per
	// write must fail with a list-inhomogeneous error unless this is set.
	UncheckedLists bool
}

func (o Options) depthLimit() int {
	if o.DepthLimit <= 0 {
		return DefaultDepthLimit
	}
	return o.DepthLimit
}
