package mcdb

import (
	"testing"

	"github.com/df-mc/mcdbcodec/world"
	"github.com/df-mc/mcdbcodec/world/chunk"
	"github.com/df-mc/mcdbcodec/world/nbt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory KeyValueStore, just enough to exercise DB
// without a real LevelDB file on disk.
type memStore struct {
	m map[string][]byte
}

func newMemStore() *memStore { return &memStore{m: make(map[string][]byte)} }

func (s *memStore) Get(key []byte) ([]byte, error) {
	v, ok := s.m[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}
func (s *memStore) Put(key, value []byte) error { s.m[string(key)] = value; return nil }
func (s *memStore) Delete(key []byte) error     { delete(s.m, string(key)); return nil }
func (s *memStore) Iter() (KeyValueIterator, error) {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return &memIterator{s: s, keys: keys, i: -1}, nil
}

type memIterator struct {
	s    *memStore
	keys []string
	i    int
}

func (it *memIterator) Next() bool { it.i++; return it.i < len(it.keys) }
func (it *memIterator) Key() []byte {
	return []byte(it.keys[it.i])
}
func (it *memIterator) Value() []byte { return it.s.m[it.keys[it.i]] }
func (it *memIterator) Error() error  { return nil }
func (it *memIterator) Release()     {}

func newTestDB(t *testing.T) *DB {
	conf := Config{Log: logrus.New(), Options: DefaultOptions}
	db, err := conf.OpenWithStore(newMemStore(), t.TempDir())
	require.NoError(t, err)
	return db
}

func TestChunkRoundTrip(t *testing.T) {
	db := newTestDB(t)
	r, ok := world.DimIdentityOverworld.DefaultRange()
	require.True(t, ok)

	c := chunk.New(0, r)
	c.Sub(0).SetLayers([]*chunk.PalettedStorage{chunk.NewPalettedStorage([4096]uint16{}, []any{uint32(0), uint32(7)})})

	pos := world.ChunkPos{3, -2}
	require.NoError(t, db.SaveChunk(pos, c, world.DimIdentityOverworld))

	got, exists, err := db.LoadChunk(pos, world.DimIdentityOverworld, r, 0)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, r, got.Range())
}

func TestChunkLoadMissing(t *testing.T) {
	db := newTestDB(t)
	r, _ := world.DimIdentityNether.DefaultRange()
	_, exists, err := db.LoadChunk(world.ChunkPos{0, 0}, world.DimIdentityNether, r, 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEntitiesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	pos := world.ChunkPos{1, 1}

	entities := []map[string]any{
		{"identifier": "minecraft:cow"},
		{"identifier": "minecraft:pig", "UniqueID": int64(42)},
	}
	require.NoError(t, db.SaveEntities(pos, entities, world.DimIdentityOverworld))

	got, err := db.LoadEntities(pos, world.DimIdentityOverworld)
	require.NoError(t, err)
	require.Len(t, got, 2)

	idents := map[string]bool{}
	for _, e := range got {
		idents[e["identifier"].(string)] = true
	}
	assert.True(t, idents["minecraft:cow"])
	assert.True(t, idents["minecraft:pig"])

	require.NoError(t, db.SaveEntities(pos, nil, world.DimIdentityOverworld))
	got, err = db.LoadEntities(pos, world.DimIdentityOverworld)
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestBlockNBTRoundTrip(t *testing.T) {
	db := newTestDB(t)
	pos := world.ChunkPos{0, 0}

	data := []map[string]any{{"id": "minecraft:chest", "x": int32(1), "y": int32(2), "z": int32(3)}}
	require.NoError(t, db.SaveBlockNBT(pos, data, world.DimIdentityOverworld))

	got, err := db.LoadBlockNBT(pos, world.DimIdentityOverworld)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "minecraft:chest", got[0]["id"])
}

func TestPlayerDataRoundTrip(t *testing.T) {
	db := newTestDB(t)
	id := uuid.New()

	require.NoError(t, db.SavePlayerSpawnPosition(id, [3]int{1, 2, 3}))

	pos, exists, err := db.LoadPlayerSpawnPosition(id)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, 1, pos.X())
	assert.Equal(t, 2, pos.Y())
	assert.Equal(t, 3, pos.Z())
}

func TestCloseWithoutLevelDatData(t *testing.T) {
	db := newTestDB(t)
	db.ldat.Data = nil
	require.NoError(t, db.Close())
}

// fakeDirectory is an in-memory Directory, for exercising the
// write-then-rename level.dat_new staging without real disk I/O.
type fakeDirectory struct{ files map[string][]byte }

func newFakeDirectory() *fakeDirectory { return &fakeDirectory{files: make(map[string][]byte)} }

func (d *fakeDirectory) ReadFile(name string) ([]byte, error) {
	b, ok := d.files[name]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}
func (d *fakeDirectory) WriteFile(name string, data []byte) error {
	d.files[name] = append([]byte(nil), data...)
	return nil
}
func (d *fakeDirectory) Rename(oldName, newName string) error {
	b, ok := d.files[oldName]
	if !ok {
		return ErrNotFound
	}
	d.files[newName] = b
	delete(d.files, oldName)
	return nil
}

func TestCloseStagesLevelDatThroughRename(t *testing.T) {
	fs := newFakeDirectory()
	conf := Config{Log: logrus.New(), Options: DefaultOptions}
	db, err := conf.OpenWithDirectory(newMemStore(), fs)
	require.NoError(t, err)

	ldat := nbt.NewCompound()
	ldat.Put("LevelName", "test")
	db.SetLevelDat(LevelDat{Version: LevelDatVersion, Data: ldat})
	require.NoError(t, db.Close())

	_, stillStaged := fs.files["level.dat_new"]
	assert.False(t, stillStaged)
	_, ok := fs.files["level.dat"]
	assert.True(t, ok)
}
