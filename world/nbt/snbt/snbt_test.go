package snbt_test

import (
	"testing"

	"github.com/df-mc/mcdbcodec/world/nbt"
	"github.com/df-mc/mcdbcodec/world/nbt/snbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompoundRoundTrip(t *testing.T) {
	src := `{A:1b,B:"hi",C:[1,2,3],D:[B;1b,2b],nested:{x:1.5f}}`
	v, err := snbt.Parse(src)
	require.NoError(t, err)
	c, ok := v.(*nbt.Compound)
	require.True(t, ok)

	got, _ := c.Get("A")
	assert.Equal(t, int8(1), got)
	got, _ = c.Get("B")
	assert.Equal(t, "hi", got)

	printed := snbt.String(v)
	reparsed, err := snbt.Parse(printed)
	require.NoError(t, err)
	assert.Equal(t, snbt.String(v), snbt.String(reparsed))
}

func TestAmbiguousRootRejected(t *testing.T) {
	_, err := snbt.Parse("hello")
	require.ErrorIs(t, err, snbt.ErrAmbiguousRoot)
}

func TestParseCompoundRequiresCompoundRoot(t *testing.T) {
	_, err := snbt.ParseCompound(`[1,2,3]`)
	require.Error(t, err)
	c, err := snbt.ParseCompound(`{a:1}`)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestIntArrayLiteral(t *testing.T) {
	v, err := snbt.Parse(`[I;1,2,3]`)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, v)
}
