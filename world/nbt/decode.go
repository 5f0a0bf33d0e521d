package nbt

import (
	"bufio"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"math"

	"github.com/df-mc/mcdbcodec/internal"
)

// Decoder reads tagged trees from an underlying stream per Options.
type Decoder struct {
	r    byteReader
	opts Options
}

// byteReader is the minimal surface decode needs; bufio.Reader and
// bytes.Reader/bytes.Buffer all satisfy it.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// NewDecoder returns a Decoder reading from r with default options
// (LittleEndian, no compression, UTF-8 strings).
func NewDecoder(r io.Reader) *Decoder {
	return NewDecoderWithOptions(r, Options{})
}

// NewDecoderWithEncoding returns a Decoder reading from r using the given
// Encoding and otherwise-default options, mirroring the common call shape
// `nbt.NewDecoderWithEncoding(buf, nbt.NetworkLittleEndian)`.
func NewDecoderWithEncoding(r io.Reader, e Encoding) *Decoder {
	return NewDecoderWithOptions(r, Options{Encoding: e})
}

// NewDecoderWithOptions returns a Decoder reading from r configured by opts.
// Compression is applied transparently around r.
func NewDecoderWithOptions(r io.Reader, opts Options) *Decoder {
	br := asByteReader(r)
	switch opts.Compression {
	case ZlibCompression:
		if zr, err := zlib.NewReader(br); err == nil {
			br = asByteReader(zr)
		}
	case GzipCompression:
		if gr, err := gzip.NewReader(br); err == nil {
			br = asByteReader(gr)
		}
	}
	return &Decoder{r: br, opts: opts}
}

func asByteReader(r io.Reader) byteReader {
	if br, ok := r.(byteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// AllowZero mirrors the gophertunnel-style decoder field used by the chunk
// package's concatenated block-entity reader: when true, a leading TagEnd yields an empty
// result instead of ErrStructuralMismatch.
func (d *Decoder) AllowZero() bool { return d.opts.AllowZero }

// SetAllowZero toggles AllowZero after construction.
func (d *Decoder) SetAllowZero(v bool) { d.opts.AllowZero = v }

// DecodeCompound reads a single root tag
// (expected to be TagCompound) and returns its value and root name.
func (d *Decoder) DecodeCompound() (*Compound, string, error) {
	tagType, err := d.r.ReadByte()
	if err != nil {
		return nil, "", wrapErr("read root tag", err)
	}
	if Type(tagType) == TagEnd {
		if d.opts.AllowZero {
			return NewCompound(), "", nil
		}
		return nil, "", ErrStructuralMismatch
	}
	if Type(tagType) != TagCompound {
		return nil, "", ErrStructuralMismatch
	}
	name, err := d.readString()
	if err != nil {
		return nil, "", wrapErr("read root name", err)
	}
	c, err := d.readCompoundBody(1)
	return c, name, err
}

// Decode reads one root compound, as DecodeCompound does (used by
// block-states.nbt style streams of repeated compounds, and by concatenated
// compound records), and stores the result into v, which must be *map[string]any, *Compound, or
// a pointer to a struct with `nbt:"..."` tags.
func (d *Decoder) Decode(v any) error {
	c, _, err := d.DecodeCompound()
	if err != nil {
		return err
	}
	return decodeInto(c, v)
}

func (d *Decoder) bo() internal.ByteOrder { return d.opts.Encoding.byteOrder() }

func (d *Decoder) readString() (string, error) {
	if d.opts.Encoding == NetworkLittleEndian {
		n, err := internal.ReadVaruint32(d.r)
		if err != nil {
			return "", err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return "", internal.ErrShortInput
		}
		return internal.DecodeString(buf, d.stringEncoding())
	}
	b, err := internal.ReadLengthPrefixedBytes16(d.r, d.bo())
	if err != nil {
		return "", err
	}
	return internal.DecodeString(b, d.stringEncoding())
}

func (d *Decoder) stringEncoding() internal.StringEncoding {
	if d.opts.StringEncoding == 0 {
		return internal.UTF8
	}
	return d.opts.StringEncoding
}

func (d *Decoder) readInt32() (int32, error) {
	if d.opts.Encoding == NetworkLittleEndian {
		return internal.ReadVarint32(d.r)
	}
	v, err := internal.ReadUint32(d.r, d.bo())
	return int32(v), err
}

func (d *Decoder) readInt64() (int64, error) {
	if d.opts.Encoding == NetworkLittleEndian {
		return internal.ReadVarint64(d.r)
	}
	v, err := internal.ReadUint64(d.r, d.bo())
	return int64(v), err
}

func (d *Decoder) readArrayLen() (int32, error) {
	// List/ByteArray/IntArray/LongArray lengths follow the same dialect as
	// a scalar TagInt: a varint under the network dialect, a plain 4-byte
	// int in the Encoding's byte order otherwise.
	if d.opts.Encoding == NetworkLittleEndian {
		return internal.ReadVarint32(d.r)
	}
	v, err := internal.ReadUint32(d.r, d.bo())
	return int32(v), err
}

func (d *Decoder) readTagValue(t Type, depth int) (any, error) {
	switch t {
	case TagByte:
		b, err := d.r.ReadByte()
		return int8(b), err
	case TagShort:
		v, err := internal.ReadUint16(d.r, d.bo())
		return int16(v), err
	case TagInt:
		return d.readInt32()
	case TagLong:
		return d.readInt64()
	case TagFloat:
		v, err := internal.ReadUint32(d.r, d.bo())
		return math.Float32frombits(v), err
	case TagDouble:
		v, err := internal.ReadUint64(d.r, d.bo())
		return math.Float64frombits(v), err
	case TagByteArray:
		n, err := d.readArrayLen()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, internal.ErrLengthOverflow
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return nil, internal.ErrShortInput
		}
		return buf, nil
	case TagString:
		return d.readString()
	case TagList:
		return d.readList(depth)
	case TagCompound:
		return d.readCompoundBody(depth)
	case TagIntArray:
		n, err := d.readArrayLen()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, internal.ErrLengthOverflow
		}
		out := make([]int32, n)
		for i := range out {
			if out[i], err = d.readInt32(); err != nil {
				return nil, err
			}
		}
		return out, nil
	case TagLongArray:
		n, err := d.readArrayLen()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, internal.ErrLengthOverflow
		}
		out := make([]int64, n)
		for i := range out {
			if out[i], err = d.readInt64(); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, ErrUnknownTag
	}
}

func (d *Decoder) readList(depth int) (*List, error) {
	if depth > d.opts.depthLimit() {
		return nil, ErrDepthExceeded
	}
	elemB, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	elem := Type(elemB)
	n, err := d.readArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, internal.ErrLengthOverflow
	}
	values := make([]any, n)
	for i := range values {
		v, err := d.readTagValue(elem, depth+1)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return &List{Elem: elem, Values: values}, nil
}

func (d *Decoder) readCompoundBody(depth int) (*Compound, error) {
	if depth > d.opts.depthLimit() {
		return nil, ErrDepthExceeded
	}
	c := NewCompound()
	for {
		tb, err := d.r.ReadByte()
		if err != nil {
			return nil, wrapErr("read tag type", err)
		}
		t := Type(tb)
		if t == TagEnd {
			return c, nil
		}
		name, err := d.readString()
		if err != nil {
			return nil, wrapErr("read tag name", err)
		}
		v, err := d.readTagValue(t, depth+1)
		if err != nil {
			return nil, fmt.Errorf("nbt: read %q (%v): %w", name, t, err)
		}
		c.Put(name, v)
	}
}

func wrapErr(msg string, err error) error {
	return fmt.Errorf("nbt: %s: %w", msg, err)
}
