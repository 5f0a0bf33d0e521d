package nbt

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"math"

	"github.com/df-mc/mcdbcodec/internal"
)

// Encoder writes tagged trees to an underlying sink per Options.
type Encoder struct {
	w    io.Writer
	opts Options
	// closers are any compression wrappers that must be flushed/closed to
	// finalize the output; they're closed by Close.
	closers []io.Closer
}

// NewEncoder returns an Encoder writing to w with default options.
func NewEncoder(w io.Writer) *Encoder {
	return NewEncoderWithOptions(w, Options{})
}

// NewEncoderWithEncoding returns an Encoder writing to w using the given
// Encoding, mirroring `nbt.NewEncoderWithEncoding(buf, nbt.LittleEndian)`.
func NewEncoderWithEncoding(w io.Writer, e Encoding) *Encoder {
	return NewEncoderWithOptions(w, Options{Encoding: e})
}

// NewEncoderWithOptions returns an Encoder writing to w configured by opts.
func NewEncoderWithOptions(w io.Writer, opts Options) *Encoder {
	e := &Encoder{w: w, opts: opts}
	switch opts.Compression {
	case ZlibCompression:
		level := opts.CompressionLevel
		if level == 0 {
			level = flate.DefaultCompression
		}
		zw, _ := zlib.NewWriterLevel(w, level)
		e.w, e.closers = zw, []io.Closer{zw}
	case GzipCompression:
		gw := gzip.NewWriter(w)
		e.w, e.closers = gw, []io.Closer{gw}
	}
	return e
}

// Close flushes and closes any compression wrapper. It is a no-op when no
// compression was configured.
func (e *Encoder) Close() error {
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

// EncodeCompound writes rootName (the
// empty string if fidelity/caller chooses not to supply one) and c as the
// root tag.
func (e *Encoder) EncodeCompound(rootName string, c *Compound) error {
	if err := e.writeByte(byte(TagCompound)); err != nil {
		return err
	}
	if err := e.writeString(rootName); err != nil {
		return err
	}
	return e.writeCompoundBody(c, 1)
}

// Encode writes v (a *Compound, map[string]any, or struct with `nbt:"..."`
// tags) as a root compound with an empty root name.
func (e *Encoder) Encode(v any) error {
	c, err := encodeValue(v)
	if err != nil {
		return err
	}
	return e.EncodeCompound("", c)
}

func asByteWriter(w io.Writer) (io.ByteWriter, bool) {
	bw, ok := w.(io.ByteWriter)
	return bw, ok
}

func writeByteFallback(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func (e *Encoder) writeByte(b byte) error {
	if bw, ok := asByteWriter(e.w); ok {
		return bw.WriteByte(b)
	}
	return writeByteFallback(e.w, b)
}

func (e *Encoder) bo() internal.ByteOrder { return e.opts.Encoding.byteOrder() }

func (e *Encoder) writeString(s string) error {
	enc := e.stringEncoding()
	b, err := internal.EncodeString(s, enc)
	if err != nil {
		return err
	}
	if e.opts.Encoding == NetworkLittleEndian {
		bw, ok := asByteWriter(e.w)
		if !ok {
			buf := new(bytes.Buffer)
			if err := internal.WriteVaruint32(buf, uint32(len(b))); err != nil {
				return err
			}
			if _, err := e.w.Write(buf.Bytes()); err != nil {
				return err
			}
			_, err = e.w.Write(b)
			return err
		}
		if err := internal.WriteVaruint32(bw, uint32(len(b))); err != nil {
			return err
		}
		_, err = e.w.Write(b)
		return err
	}
	return internal.WriteLengthPrefixedBytes16(e.w, e.bo(), b)
}

func (e *Encoder) stringEncoding() internal.StringEncoding {
	if e.opts.StringEncoding == 0 {
		return internal.UTF8
	}
	return e.opts.StringEncoding
}

func (e *Encoder) writeInt32(v int32) error {
	if e.opts.Encoding == NetworkLittleEndian {
		bw, ok := asByteWriter(e.w)
		if !ok {
			buf := new(bytes.Buffer)
			if err := internal.WriteVarint32(buf, v); err != nil {
				return err
			}
			_, err := e.w.Write(buf.Bytes())
			return err
		}
		return internal.WriteVarint32(bw, v)
	}
	return internal.WriteUint32(e.w, e.bo(), uint32(v))
}

func (e *Encoder) writeInt64(v int64) error {
	if e.opts.Encoding == NetworkLittleEndian {
		bw, ok := asByteWriter(e.w)
		if !ok {
			buf := new(bytes.Buffer)
			if err := internal.WriteVarint64(buf, v); err != nil {
				return err
			}
			_, err := e.w.Write(buf.Bytes())
			return err
		}
		return internal.WriteVarint64(bw, v)
	}
	return internal.WriteUint64(e.w, e.bo(), uint64(v))
}

func (e *Encoder) writeArrayLen(n int) error {
	if e.opts.Encoding == NetworkLittleEndian {
		bw, ok := asByteWriter(e.w)
		if !ok {
			buf := new(bytes.Buffer)
			if err := internal.WriteVarint32(buf, int32(n)); err != nil {
				return err
			}
			_, err := e.w.Write(buf.Bytes())
			return err
		}
		return internal.WriteVarint32(bw, int32(n))
	}
	return internal.WriteUint32(e.w, e.bo(), uint32(n))
}

func (e *Encoder) writeTagValue(t Type, v any, depth int) error {
	switch t {
	case TagByte:
		return e.writeByte(byte(v.(int8)))
	case TagShort:
		return internal.WriteUint16(e.w, e.bo(), uint16(v.(int16)))
	case TagInt:
		return e.writeInt32(v.(int32))
	case TagLong:
		return e.writeInt64(v.(int64))
	case TagFloat:
		return internal.WriteUint32(e.w, e.bo(), math.Float32bits(v.(float32)))
	case TagDouble:
		return internal.WriteUint64(e.w, e.bo(), math.Float64bits(v.(float64)))
	case TagByteArray:
		b := v.([]byte)
		if err := e.writeArrayLen(len(b)); err != nil {
			return err
		}
		_, err := e.w.Write(b)
		return err
	case TagString:
		return e.writeString(v.(string))
	case TagList:
		return e.writeList(v.(*List), depth)
	case TagCompound:
		return e.writeCompoundBody(v.(*Compound), depth)
	case TagIntArray:
		a := v.([]int32)
		if err := e.writeArrayLen(len(a)); err != nil {
			return err
		}
		for _, n := range a {
			if err := e.writeInt32(n); err != nil {
				return err
			}
		}
		return nil
	case TagLongArray:
		a := v.([]int64)
		if err := e.writeArrayLen(len(a)); err != nil {
			return err
		}
		for _, n := range a {
			if err := e.writeInt64(n); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrUnsupportedValue
	}
}

func (e *Encoder) writeList(l *List, depth int) error {
	if depth > e.opts.depthLimit() {
		return ErrDepthExceeded
	}
	if !e.opts.UncheckedLists {
		for _, v := range l.Values {
			t, ok := TypeOf(v)
			if !ok || (l.Elem != TagEnd && t != l.Elem) {
				return ErrListInhomogeneous
			}
		}
	}
	elem := l.Elem
	if elem == TagEnd && len(l.Values) > 0 {
		elem, _ = TypeOf(l.Values[0])
	}
	if err := e.writeByte(byte(elem)); err != nil {
		return err
	}
	if err := e.writeArrayLen(len(l.Values)); err != nil {
		return err
	}
	for _, v := range l.Values {
		t := elem
		if vt, ok := TypeOf(v); ok && e.opts.UncheckedLists {
			t = vt
		}
		if err := e.writeTagValue(t, v, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeCompoundBody(c *Compound, depth int) error {
	if depth > e.opts.depthLimit() {
		return ErrDepthExceeded
	}
	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		t, ok := TypeOf(v)
		if !ok {
			return ErrUnsupportedValue
		}
		if err := e.writeByte(byte(t)); err != nil {
			return err
		}
		if err := e.writeString(k); err != nil {
			return err
		}
		if err := e.writeTagValue(t, v, depth+1); err != nil {
			return err
		}
	}
	return e.writeByte(byte(TagEnd))
}
