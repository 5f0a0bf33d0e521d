package internal_test

import (
	"bytes"
	"testing"

	"github.com/df-mc/mcdbcodec/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarint32RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 127, -128, 300, -300, 1 << 20, -(1 << 20), 2147483647, -2147483648} {
		buf := new(bytes.Buffer)
		require.NoError(t, internal.WriteVarint32(buf, v))
		got, err := internal.ReadVarint32(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Zero(t, buf.Len())
	}
}

func TestVarint64RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		buf := new(bytes.Buffer)
		require.NoError(t, internal.WriteVarint64(buf, v))
		got, err := internal.ReadVarint64(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVaruint32TooLong(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	_, err := internal.ReadVaruint32(buf)
	require.ErrorIs(t, err, internal.ErrVarintTooLong)
}
