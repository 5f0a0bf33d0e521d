package nbt

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
)

// Marshal encodes v (little-endian, uncompressed) as a root compound with an
// empty root name and returns the resulting bytes.
func Marshal(v any) ([]byte, error) {
	return MarshalEncoding(v, LittleEndian)
}

// MarshalEncoding is Marshal with an explicit Encoding, mirroring the
// teacher's `nbt.MarshalEncoding(v, nbt.LittleEndian)` call shape.
func MarshalEncoding(v any, e Encoding) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := NewEncoderWithEncoding(buf, e)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes b (little-endian, uncompressed) into v.
func Unmarshal(b []byte, v any) error {
	return UnmarshalEncoding(b, v, LittleEndian)
}

// UnmarshalEncoding is Unmarshal with an explicit Encoding, mirroring the
// teacher's `nbt.UnmarshalEncoding(data, &v, nbt.LittleEndian)` call shape.
func UnmarshalEncoding(b []byte, v any, e Encoding) error {
	dec := NewDecoderWithEncoding(bytes.NewReader(b), e)
	return dec.Decode(v)
}

// encodeValue converts a Go value into a *Compound tree suitable for
// EncodeCompound. Accepted inputs: *Compound, map[string]any (and any named
// map type with string keys and `any`/interface{} values), or a struct (or
// pointer to struct) whose exported fields carry an `nbt:"name"` tag.
func encodeValue(v any) (*Compound, error) {
	switch t := v.(type) {
	case *Compound:
		return t, nil
	case map[string]any:
		return mapToCompound(t), nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return NewCompound(), nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		return mapValueToCompound(rv), nil
	case reflect.Struct:
		return structToCompound(rv)
	default:
		return nil, fmt.Errorf("nbt: cannot encode %T as a compound: %w", v, ErrUnsupportedValue)
	}
}

// CompoundFromMap converts a raw parsed-NBT map (as produced by Unmarshal
// into a map[string]any, or hand-built by a caller) into a *Compound,
// suitable for SerializeConcatenatedCompounds and similar record writers.
func CompoundFromMap(m map[string]any) *Compound {
	return mapToCompound(m)
}

func mapToCompound(m map[string]any) *Compound {
	c := NewCompound()
	for k, v := range m {
		c.Put(k, toTagValue(reflect.ValueOf(v)))
	}
	return c
}

func mapValueToCompound(rv reflect.Value) *Compound {
	c := NewCompound()
	iter := rv.MapRange()
	for iter.Next() {
		c.Put(iter.Key().String(), toTagValue(iter.Value()))
	}
	return c
}

func structToCompound(rv reflect.Value) (*Compound, error) {
	c := NewCompound()
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name, skip := fieldName(f)
		if skip {
			continue
		}
		c.Put(name, toTagValue(rv.Field(i)))
	}
	return c, nil
}

func fieldName(f reflect.StructField) (name string, skip bool) {
	tag := f.Tag.Get("nbt")
	if tag == "-" {
		return "", true
	}
	if tag != "" {
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag, false
		}
	}
	return f.Name, false
}

// toTagValue converts an arbitrary reflect.Value into the `any` shape the
// tree encoder understands (int8/int16/int32/int64/float32/float64/string/
// []byte/[]int32/[]int64/*List/*Compound).
func toTagValue(rv reflect.Value) any {
	if !rv.IsValid() {
		return int8(0)
	}
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return int8(0)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return int8(1)
		}
		return int8(0)
	case reflect.Int8:
		return int8(rv.Int())
	case reflect.Int16:
		return int16(rv.Int())
	case reflect.Int32, reflect.Int:
		return int32(rv.Int())
	case reflect.Int64:
		return int64(rv.Int())
	case reflect.Uint8:
		return int8(rv.Uint())
	case reflect.Uint32:
		return int32(rv.Uint())
	case reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32:
		return float32(rv.Float())
	case reflect.Float64:
		return float64(rv.Float())
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		switch rv.Type().Elem().Kind() {
		case reflect.Uint8:
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return b
		case reflect.Int32:
			a := make([]int32, rv.Len())
			for i := range a {
				a[i] = int32(rv.Index(i).Int())
			}
			return a
		case reflect.Int64:
			a := make([]int64, rv.Len())
			for i := range a {
				a[i] = int64(rv.Index(i).Int())
			}
			return a
		default:
			values := make([]any, rv.Len())
			var elem Type
			for i := range values {
				values[i] = toTagValue(rv.Index(i))
				if i == 0 {
					elem, _ = TypeOf(values[i])
				}
			}
			return &List{Elem: elem, Values: values}
		}
	case reflect.Map:
		return mapValueToCompound(rv)
	case reflect.Struct:
		c, _ := structToCompound(rv)
		return c
	default:
		return int8(0)
	}
}

// decodeInto stores a parsed *Compound into v, which must be a pointer to
// map[string]any, *Compound, or a struct.
func decodeInto(c *Compound, v any) error {
	switch t := v.(type) {
	case *map[string]any:
		*t = compoundToMap(c)
		return nil
	case **Compound:
		*t = c
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("nbt: Decode destination must be a non-nil pointer, got %T", v)
	}
	elem := rv.Elem()
	switch elem.Kind() {
	case reflect.Map:
		elem.Set(reflect.ValueOf(compoundToMap(c)))
		return nil
	case reflect.Struct:
		return compoundToStruct(c, elem)
	default:
		return fmt.Errorf("nbt: cannot decode into %T: %w", v, ErrUnsupportedValue)
	}
}

func compoundToMap(c *Compound) map[string]any {
	m := make(map[string]any, c.Len())
	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		m[k] = fromTagValue(v)
	}
	return m
}

func fromTagValue(v any) any {
	switch t := v.(type) {
	case *Compound:
		return compoundToMap(t)
	case *List:
		out := make([]any, len(t.Values))
		for i, e := range t.Values {
			out[i] = fromTagValue(e)
		}
		return out
	default:
		return v
	}
}

func compoundToStruct(c *Compound, rv reflect.Value) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, skip := fieldName(f)
		if skip {
			continue
		}
		v, ok := c.Get(name)
		if !ok {
			continue
		}
		if err := assign(rv.Field(i), v); err != nil {
			return fmt.Errorf("nbt: field %s: %w", f.Name, err)
		}
	}
	return nil
}

func assign(dst reflect.Value, v any) error {
	switch dst.Kind() {
	case reflect.String:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		dst.SetString(s)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		dst.SetInt(reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Int())
	case reflect.Uint8, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Int()))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(reflect.ValueOf(v).Convert(reflect.TypeOf(float64(0))).Float())
	case reflect.Bool:
		switch n := v.(type) {
		case int8:
			dst.SetBool(n != 0)
		default:
			return fmt.Errorf("expected byte for bool, got %T", v)
		}
	case reflect.Map:
		c, ok := v.(*Compound)
		if !ok {
			return fmt.Errorf("expected compound, got %T", v)
		}
		dst.Set(reflect.ValueOf(compoundToMap(c)))
	case reflect.Struct:
		c, ok := v.(*Compound)
		if !ok {
			return fmt.Errorf("expected compound, got %T", v)
		}
		return compoundToStruct(c, dst)
	case reflect.Slice:
		return assignSlice(dst, v)
	case reflect.Interface:
		dst.Set(reflect.ValueOf(fromTagValue(v)))
	default:
		return fmt.Errorf("unsupported destination kind %s", dst.Kind())
	}
	return nil
}

func assignSlice(dst reflect.Value, v any) error {
	switch b := v.(type) {
	case []byte:
		dst.SetBytes(b)
		return nil
	case []int32:
		if dst.Type().Elem().Kind() == reflect.Int32 {
			dst.Set(reflect.ValueOf(b))
			return nil
		}
	case []int64:
		if dst.Type().Elem().Kind() == reflect.Int64 {
			dst.Set(reflect.ValueOf(b))
			return nil
		}
	case *List:
		out := reflect.MakeSlice(dst.Type(), len(b.Values), len(b.Values))
		for i, e := range b.Values {
			if err := assign(out.Index(i), e); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("cannot assign %T to slice of %s", v, dst.Type().Elem())
}
