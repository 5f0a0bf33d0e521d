package mcdb

import (
	"testing"

	"github.com/df-mc/mcdbcodec/world"
	"github.com/df-mc/mcdbcodec/world/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizedStateRoundTrip(t *testing.T) {
	s, err := ParseFinalizedState([]byte{1, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, NeedsPopulation, s)

	_, err = ParseFinalizedState([]byte{3, 0, 0, 0})
	assert.ErrorIs(t, err, ErrEnumRange)

	assert.Equal(t, []byte{1, 0, 0, 0}, SerializeFinalizedState(NeedsPopulation))
}

func TestBorderBlocksScenario(t *testing.T) {
	cols, err := ParseBorderBlocks([]byte{2, 0x00, 0x11})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, world.ColumnPos{X: 0, Z: 0}, cols[0])
	assert.Equal(t, world.ColumnPos{X: 1, Z: 1}, cols[1])

	assert.Nil(t, SerializeBorderBlocks(nil, DefaultOptions))

	full := make([]byte, 1+256)
	parsedFull, err := ParseBorderBlocks(full)
	require.NoError(t, err)
	assert.Len(t, parsedFull, 256)
}

func TestBlendingDataScenario(t *testing.T) {
	zero, err := ParseBlendingData([]byte{0})
	require.NoError(t, err)
	assert.True(t, zero.Zero)

	ver, err := ParseBlendingData([]byte{0, 7})
	require.NoError(t, err)
	assert.Equal(t, byte(7), ver.Version)
	assert.False(t, ver.Zero)

	payload := append([]byte{1, 7}, make([]byte, 32)...)
	for i := 0; i < 16; i++ {
		payload[2+i*2] = 0xff
		payload[2+i*2+1] = 0x7f
	}
	payload = append(payload, 5)
	full, err := ParseBlendingData(payload)
	require.NoError(t, err)
	assert.Equal(t, byte(7), full.Version)
	assert.Equal(t, int8(5), full.Flag)
	for _, h := range full.Heights {
		assert.Nil(t, h)
	}
	assert.Equal(t, payload, SerializeBlendingData(full))
}

func TestMetadataDictionaryFingerprintRoundTrip(t *testing.T) {
	inner := nbt.NewCompound()
	inner.Put("D", int8(2))
	inner.Put("C", int8(3))
	root := nbt.NewCompound()
	root.Put("A", int8(1))
	root.Put("B", inner)

	fp, err := Fingerprint(root)
	require.NoError(t, err)

	d := NewMetaDataDictionary()
	gotFP, err := d.Insert(root)
	require.NoError(t, err)
	assert.Equal(t, fp, gotFP)

	data, err := SerializeMetaDataDictionary(d, DefaultOptions)
	require.NoError(t, err)

	parsed, err := ParseMetaDataDictionary(data)
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Len())
	assert.True(t, parsed.Contains(fp))
}

func TestMetadataDictionaryRejectsIncorrectHash(t *testing.T) {
	c := nbt.NewCompound()
	c.Put("A", int8(1))
	fp, err := Fingerprint(c)
	require.NoError(t, err)

	d := NewMetaDataDictionary()
	d.keys = append(d.keys, fp+1)
	d.values[fp+1] = c
	data, err := SerializeMetaDataDictionary(d, DefaultOptions)
	require.NoError(t, err)

	_, err = ParseMetaDataDictionary(data)
	assert.ErrorIs(t, err, ErrIncorrectHash)
}

func TestChecksumsRoundTrip(t *testing.T) {
	entries := []ChecksumEntry{
		{Kind: ChecksumData2D, Hash: 1},
		{Kind: ChecksumSubChunkBlocks, SubChunkY: -3, Hash: 2},
	}
	data, err := SerializeChecksums(entries, DefaultOptions)
	require.NoError(t, err)
	got, err := ParseChecksums(data)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestHardcodedSpawnersRoundTrip(t *testing.T) {
	spawners := []HardcodedSpawner{{Volume: AABB{0, 0, 0, 1, 1, 1}, Kind: 2}}
	data, err := SerializeHardcodedSpawners(spawners, DefaultOptions)
	require.NoError(t, err)
	got, err := ParseHardcodedSpawners(data)
	require.NoError(t, err)
	assert.Equal(t, spawners, got)

	x, y, z := spawners[0].Volume.Width()
	assert.Equal(t, uint32(2), x)
	assert.Equal(t, uint32(2), y)
	assert.Equal(t, uint32(2), z)
}

func TestFlatWorldLayersRoundTrip(t *testing.T) {
	ids, err := ParseFlatWorldLayers([]byte("[7,3,1]"))
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3, 1}, ids)
	assert.Equal(t, []byte("[7,3,1]"), SerializeFlatWorldLayers(ids))
}

func TestActorDigestVersionRoundTrip(t *testing.T) {
	v, err := ParseActorDigestVersion([]byte{4})
	require.NoError(t, err)
	assert.Equal(t, ActorDigestVersion(4), v)
	assert.Equal(t, []byte{4}, SerializeActorDigestVersion(v))
}
