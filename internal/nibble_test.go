package internal_test

import (
	"testing"

	"github.com/df-mc/mcdbcodec/internal"
	"github.com/stretchr/testify/assert"
)

func TestNibbleArraySetGet(t *testing.T) {
	n := internal.NewNibbleArray(16)
	for i := 0; i < 16; i++ {
		n.Set(i, uint8(i%16))
	}
	for i := 0; i < 16; i++ {
		assert.Equal(t, uint8(i%16), n.At(i))
	}
	assert.Equal(t, 8, len(n.Bytes()))
}

func TestStringEncodingRoundTrip(t *testing.T) {
	for _, enc := range []internal.StringEncoding{internal.UTF8, internal.CESU8, internal.ModifiedUTF8} {
		s := "hello é\U0001F600"
		b, err := internal.EncodeString(s, enc)
		assert.NoError(t, err)
		got, err := internal.DecodeString(b, enc)
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
