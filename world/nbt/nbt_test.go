package nbt_test

import (
	"bytes"
	"testing"

	"github.com/df-mc/mcdbcodec/world/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundRoundTripLittleEndian(t *testing.T) {
	c := nbt.NewCompound()
	c.Put("A", int8(1))
	inner := nbt.NewCompound()
	inner.Put("D", int8(2))
	inner.Put("C", int8(3))
	c.Put("B", inner)

	buf := new(bytes.Buffer)
	enc := nbt.NewEncoderWithEncoding(buf, nbt.LittleEndian)
	require.NoError(t, enc.EncodeCompound("", c))

	dec := nbt.NewDecoderWithEncoding(bytes.NewReader(buf.Bytes()), nbt.LittleEndian)
	got, name, err := dec.DecodeCompound()
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, []string{"A", "B"}, got.Keys())

	gotInner, _ := got.Get("B")
	assert.Equal(t, []string{"D", "C"}, gotInner.(*nbt.Compound).Keys())
}

func TestNetworkLittleEndianVarint(t *testing.T) {
	c := nbt.NewCompound()
	c.Put("big", int32(1<<20))
	c.Put("neg", int64(-300))
	c.Put("name", "hello")

	buf := new(bytes.Buffer)
	enc := nbt.NewEncoderWithEncoding(buf, nbt.NetworkLittleEndian)
	require.NoError(t, enc.EncodeCompound("", c))

	dec := nbt.NewDecoderWithEncoding(bytes.NewReader(buf.Bytes()), nbt.NetworkLittleEndian)
	got, _, err := dec.DecodeCompound()
	require.NoError(t, err)
	v, _ := got.Get("big")
	assert.Equal(t, int32(1<<20), v)
	v, _ = got.Get("neg")
	assert.Equal(t, int64(-300), v)
	v, _ = got.Get("name")
	assert.Equal(t, "hello", v)
}

func TestNetworkLittleEndianArrayAndListLengths(t *testing.T) {
	c := nbt.NewCompound()
	c.Put("list", &nbt.List{Elem: nbt.TagInt, Values: []any{int32(1), int32(2), int32(3)}})
	c.Put("bytes", []byte{1, 2, 3, 4, 5})
	c.Put("ints", []int32{10, -20, 30})
	c.Put("longs", []int64{100, -200})

	buf := new(bytes.Buffer)
	enc := nbt.NewEncoderWithEncoding(buf, nbt.NetworkLittleEndian)
	require.NoError(t, enc.EncodeCompound("", c))

	dec := nbt.NewDecoderWithEncoding(bytes.NewReader(buf.Bytes()), nbt.NetworkLittleEndian)
	got, _, err := dec.DecodeCompound()
	require.NoError(t, err)

	v, _ := got.Get("list")
	assert.Equal(t, []any{int32(1), int32(2), int32(3)}, v.(*nbt.List).Values)
	v, _ = got.Get("bytes")
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, v)
	v, _ = got.Get("ints")
	assert.Equal(t, []int32{10, -20, 30}, v)
	v, _ = got.Get("longs")
	assert.Equal(t, []int64{100, -200}, v)
}

func TestListHomogeneityEnforced(t *testing.T) {
	c := nbt.NewCompound()
	c.Put("list", &nbt.List{Elem: nbt.TagInt, Values: []any{int32(1), "oops"}})

	buf := new(bytes.Buffer)
	enc := nbt.NewEncoderWithEncoding(buf, nbt.LittleEndian)
	err := enc.EncodeCompound("", c)
	require.ErrorIs(t, err, nbt.ErrListInhomogeneous)

	buf.Reset()
	uncheckedEnc := nbt.NewEncoderWithOptions(buf, nbt.Options{UncheckedLists: true})
	require.NoError(t, uncheckedEnc.EncodeCompound("", c))
}

func TestDepthLimitEnforced(t *testing.T) {
	var deepest *nbt.Compound
	root := nbt.NewCompound()
	cur := root
	for i := 0; i < nbt.DefaultDepthLimit+2; i++ {
		next := nbt.NewCompound()
		cur.Put("n", next)
		cur = next
	}
	deepest = cur
	deepest.Put("leaf", int8(1))

	buf := new(bytes.Buffer)
	enc := nbt.NewEncoderWithEncoding(buf, nbt.LittleEndian)
	err := enc.EncodeCompound("", root)
	require.ErrorIs(t, err, nbt.ErrDepthExceeded)
}

func TestMarshalUnmarshalStruct(t *testing.T) {
	type playerData struct {
		UUID     string `nbt:"MsaId"`
		ServerID string `nbt:"ServerId"`
	}
	p := playerData{UUID: "abc", ServerID: "srv"}
	data, err := nbt.MarshalEncoding(p, nbt.LittleEndian)
	require.NoError(t, err)

	var got playerData
	require.NoError(t, nbt.UnmarshalEncoding(data, &got, nbt.LittleEndian))
	assert.Equal(t, p, got)
}

func TestAllowZero(t *testing.T) {
	dec := nbt.NewDecoderWithOptions(bytes.NewReader([]byte{0}), nbt.Options{AllowZero: true})
	c, name, err := dec.DecodeCompound()
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, 0, c.Len())
}
