package mcdb

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/df-mc/mcdbcodec/world"
	"github.com/df-mc/mcdbcodec/world/chunk"
	"github.com/df-mc/mcdbcodec/world/cube"
	"github.com/df-mc/mcdbcodec/world/nbt"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// DB reads and writes the record catalog against a KeyValueStore, plus the
// level.dat file next to it. levelname.txt is neither read nor written.
type DB struct {
	conf  Config
	store KeyValueStore
	fs    Directory
	ldat  LevelDat
}

// LevelDat returns the parsed level.dat this DB was opened with.
func (db *DB) LevelDat() LevelDat { return db.ldat }

// SetLevelDat replaces the level.dat contents that Close will persist.
func (db *DB) SetLevelDat(d LevelDat) { db.ldat = d }

// playerData holds the fields that locate where a player's server data is
// stored, keyed by the player's UUID.
type playerData struct {
	UUID         string `nbt:"MsaId"`
	ServerID     string `nbt:"ServerId"`
	SelfSignedID string `nbt:"SelfSignedId"`
}

// LoadPlayerSpawnPosition loads a player's spawn position from their server
// data, keyed by their UUID.
func (db *DB) LoadPlayerSpawnPosition(id uuid.UUID) (pos cube.Pos, exists bool, err error) {
	serverData, _, exists, err := db.LoadPlayerData(id)
	if !exists || err != nil {
		return cube.Pos{}, exists, err
	}
	x, y, z := serverData["SpawnX"], serverData["SpawnY"], serverData["SpawnZ"]
	if x == nil || y == nil || z == nil {
		return cube.Pos{}, true, fmt.Errorf("mcdb: spawn fields missing from server data for player %v", id)
	}
	return cube.Pos{int(x.(int32)), int(y.(int32)), int(z.(int32))}, true, nil
}

// LoadPlayerData loads the server data stored for a specific player UUID.
func (db *DB) LoadPlayerData(id uuid.UUID) (serverData map[string]any, key string, exists bool, err error) {
	data, err := db.store.Get([]byte("player_" + id.String()))
	if err == ErrNotFound {
		return nil, "", false, nil
	} else if err != nil {
		return nil, "", true, fmt.Errorf("mcdb: read player data for %v: %w", id, err)
	}

	var d playerData
	if err := nbt.UnmarshalEncoding(data, &d, nbt.LittleEndian); err != nil {
		return nil, "", true, fmt.Errorf("mcdb: decode player data for %v: %w", id, err)
	}
	if d.UUID != id.String() || d.ServerID == "" {
		return nil, d.ServerID, true, fmt.Errorf("mcdb: invalid player data for %v: %+v", id, d)
	}
	serverDB, err := db.store.Get([]byte(d.ServerID))
	if err != nil {
		return nil, d.ServerID, true, fmt.Errorf("mcdb: read server data for %v (%v): %w", id, d.ServerID, err)
	}
	if err := nbt.UnmarshalEncoding(serverDB, &serverData, nbt.LittleEndian); err != nil {
		return nil, d.ServerID, true, fmt.Errorf("mcdb: decode server data for %v: %w", id, err)
	}
	return serverData, d.ServerID, true, nil
}

// SaveLocalPlayerData saves the local (split-screen host) player's data.
func (db *DB) SaveLocalPlayerData(data map[string]any) error {
	b, err := nbt.MarshalEncoding(data, nbt.LittleEndian)
	if err != nil {
		return fmt.Errorf("mcdb: encode local player data: %w", err)
	}
	if err := db.store.Put([]byte(localPlayerKey), b); err != nil {
		return fmt.Errorf("mcdb: save local player data: %w", err)
	}
	return nil
}

// SavePlayerSpawnPosition saves a player's spawn position to their server
// data, creating the player's index entry if absent.
func (db *DB) SavePlayerSpawnPosition(id uuid.UUID, pos cube.Pos) error {
	_, err := db.store.Get([]byte("player_" + id.String()))
	d := make(map[string]any)
	k := "player_server_" + id.String()

	if err == ErrNotFound {
		data, err := nbt.MarshalEncoding(playerData{UUID: id.String(), ServerID: k}, nbt.LittleEndian)
		if err != nil {
			return fmt.Errorf("mcdb: encode player index for %v: %w", id, err)
		}
		if err := db.store.Put([]byte("player_"+id.String()), data); err != nil {
			return fmt.Errorf("mcdb: write player index for %v: %w", id, err)
		}
	} else {
		if d, k, _, err = db.LoadPlayerData(id); err != nil {
			return err
		}
	}
	d["SpawnX"] = int32(pos.X())
	d["SpawnY"] = int32(pos.Y())
	d["SpawnZ"] = int32(pos.Z())

	data, err := nbt.MarshalEncoding(d, nbt.LittleEndian)
	if err != nil {
		return fmt.Errorf("mcdb: encode server data for %v: %w", id, err)
	}
	if err = db.store.Put([]byte(k), data); err != nil {
		return fmt.Errorf("mcdb: write server data for %v: %w", id, err)
	}
	return nil
}

// LoadChunk loads the chunk at position, in the dimension identified by dim
// with the given vertical range and air palette value. exists is false if no
// chunk-version key is present.
func (db *DB) LoadChunk(position world.ChunkPos, dim world.DimensionIdentity, r cube.Range, air uint32) (c *chunk.Chunk, exists bool, err error) {
	key := ChunkKey(position, dim, db.conf.Options.Elision, nil)

	if _, err = db.store.Get(append(key, byte(TagVersion))); err == ErrNotFound {
		if _, err = db.store.Get(append(key, byte(TagVersionOld))); err != nil {
			return nil, false, nil
		}
	} else if err != nil {
		return nil, true, fmt.Errorf("mcdb: read chunk version at %v: %w", position, err)
	}

	var data chunk.SerialisedData
	data.Biomes, err = db.store.Get(append(key, byte(TagData3D)))
	if err != nil && err != ErrNotFound {
		return nil, true, fmt.Errorf("mcdb: read 3D data at %v: %w", position, err)
	}
	if len(data.Biomes) > 512 {
		data.Biomes = data.Biomes[512:]
	}

	subCount := (r.Max()-r.Min())>>4 + 1
	data.SubChunks = make([][]byte, subCount)
	for i := range data.SubChunks {
		k := append(append([]byte(nil), key...), byte(TagSubChunkPrefix), byte(i+(r.Min()>>4)))
		sub, err := db.store.Get(k)
		if err == ErrNotFound {
			continue
		} else if err != nil {
			return nil, true, fmt.Errorf("mcdb: read sub chunk %d at %v: %w", i, position, err)
		}
		data.SubChunks[i] = sub
	}
	c, err = chunk.DiskDecode(data, air, r)
	return c, true, err
}

// SaveChunk saves c at position in the dimension identified by dim.
func (db *DB) SaveChunk(position world.ChunkPos, c *chunk.Chunk, dim world.DimensionIdentity) error {
	data := chunk.DiskEncode(c)
	key := ChunkKey(position, dim, db.conf.Options.Elision, nil)

	if err := db.store.Put(append(append([]byte(nil), key...), byte(TagVersion)), []byte{LevelDatVersion}); err != nil {
		return fmt.Errorf("mcdb: write chunk version at %v: %w", position, err)
	}
	if err := db.store.Put(append(append([]byte(nil), key...), byte(TagData3D)), append(make([]byte, 512), data.Biomes...)); err != nil {
		return fmt.Errorf("mcdb: write 3D data at %v: %w", position, err)
	}
	if err := db.store.Put(append(append([]byte(nil), key...), byte(TagFinalizedState)), SerializeFinalizedState(Done)); err != nil {
		return fmt.Errorf("mcdb: write finalized state at %v: %w", position, err)
	}
	for i, sub := range data.SubChunks {
		if sub == nil {
			continue
		}
		k := append(append([]byte(nil), key...), byte(TagSubChunkPrefix), byte(i+(c.Range().Min()>>4)))
		if err := db.store.Put(k, sub); err != nil {
			return fmt.Errorf("mcdb: write sub chunk %d at %v: %w", i, position, err)
		}
	}
	return nil
}

// LoadEntities loads every raw entity compound stored for the chunk at pos:
// the legacy concatenated-compound record under TagEntity, plus any
// actorstorage entries reachable from the column's digp index.
func (db *DB) LoadEntities(pos world.ChunkPos, dim world.DimensionIdentity) ([]map[string]any, error) {
	key := ChunkKey(pos, dim, db.conf.Options.Elision, nil)
	var out []map[string]any

	if data, err := db.store.Get(append(append([]byte(nil), key...), byte(TagEntity))); err == nil {
		compounds, err := ParseConcatenatedCompounds(data, nbt.LittleEndian)
		if err != nil {
			return nil, fmt.Errorf("mcdb: decode entities at %v: %w", pos, err)
		}
		for _, c := range compounds {
			out = append(out, compoundValues(c))
		}
	} else if err != ErrNotFound {
		return nil, err
	}

	digp, err := db.store.Get(actorDigestKey(pos, dim, db.conf.Options.Elision))
	if err == ErrNotFound {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	ids, err := ParseActorDigest(digp)
	if err != nil {
		return nil, fmt.Errorf("mcdb: decode actor digest at %v: %w", pos, err)
	}
	for _, id := range ids {
		data, err := db.store.Get(actorKey(id))
		if err == ErrNotFound {
			db.conf.Log.Warnf("mcdb: actor %x referenced by digest at %v not found", id, pos)
			continue
		} else if err != nil {
			return nil, err
		}
		compounds, err := ParseConcatenatedCompounds(data, nbt.LittleEndian)
		if err != nil {
			return nil, fmt.Errorf("mcdb: decode actor %x at %v: %w", id, pos, err)
		}
		for _, c := range compounds {
			out = append(out, compoundValues(c))
		}
	}
	return out, nil
}

// SaveEntities saves entities (raw parsed NBT, one map per entity) to the
// chunk at pos, replacing whatever actorstorage entries previously existed
// for that column.
func (db *DB) SaveEntities(pos world.ChunkPos, entities []map[string]any, dim world.DimensionIdentity) error {
	digpKey := actorDigestKey(pos, dim, db.conf.Options.Elision)

	var previousIDs []int64
	if prev, err := db.store.Get(digpKey); err == nil {
		for i := 0; i+8 <= len(prev); i += 8 {
			previousIDs = append(previousIDs, int64(binary.LittleEndian.Uint64(prev[i:i+8])))
		}
	} else if err != ErrNotFound {
		return err
	}

	var ids []int64
	for _, e := range entities {
		id, ok := e["UniqueID"].(int64)
		if !ok {
			u := uuid.New()
			id = int64(binary.BigEndian.Uint64(u[8:16]))
			e["UniqueID"] = id
		}
		data, err := nbt.MarshalEncoding(e, nbt.LittleEndian)
		if err != nil {
			return fmt.Errorf("mcdb: encode entity at %v: %w", pos, err)
		}
		if err := db.store.Put(actorKey(actorIDFromUnique(id)), data); err != nil {
			return fmt.Errorf("mcdb: write entity at %v: %w", pos, err)
		}
		ids = append(ids, id)
	}

	for _, id := range previousIDs {
		if !slices.Contains(ids, id) {
			_ = db.store.Delete(actorKey(actorIDFromUnique(id)))
		}
	}
	if len(entities) == 0 {
		return db.store.Delete(digpKey)
	}
	digp := make([]byte, 0, 8*len(ids))
	for _, id := range ids {
		digp = binary.LittleEndian.AppendUint64(digp, uint64(id))
	}
	if err := db.store.Put(digpKey, digp); err != nil {
		return fmt.Errorf("mcdb: write actor digest at %v: %w", pos, err)
	}
	_ = db.store.Delete(append(append([]byte(nil), ChunkKey(pos, dim, db.conf.Options.Elision, nil)...), byte(TagEntity)))
	return nil
}

func actorIDFromUnique(id int64) ActorID {
	var a ActorID
	binary.LittleEndian.PutUint64(a[:], uint64(id))
	return a
}

// LoadBlockNBT loads every block entity compound stored for the chunk at
// position.
func (db *DB) LoadBlockNBT(position world.ChunkPos, dim world.DimensionIdentity) ([]map[string]any, error) {
	key := append(ChunkKey(position, dim, db.conf.Options.Elision, nil), byte(TagBlockEntity))
	data, err := db.store.Get(key)
	if err == ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	compounds, err := ParseConcatenatedCompounds(data, nbt.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("mcdb: decode block entities at %v: %w", position, err)
	}
	out := make([]map[string]any, len(compounds))
	for i, c := range compounds {
		out[i] = compoundValues(c)
	}
	return out, nil
}

// SaveBlockNBT saves block entity compounds to the chunk at position.
func (db *DB) SaveBlockNBT(position world.ChunkPos, data []map[string]any, dim world.DimensionIdentity) error {
	key := append(ChunkKey(position, dim, db.conf.Options.Elision, nil), byte(TagBlockEntity))
	if len(data) == 0 {
		return db.store.Delete(key)
	}
	compounds := make([]*nbt.Compound, len(data))
	for i, m := range data {
		compounds[i] = nbt.CompoundFromMap(m)
	}
	b, err := SerializeConcatenatedCompounds(compounds, nbt.LittleEndian)
	if err != nil {
		return fmt.Errorf("mcdb: encode block entities at %v: %w", position, err)
	}
	return db.store.Put(key, b)
}

// NewChunkIterator returns a ChunkIterator over every distinct chunk column
// in the DB within r. A nil r imposes no bound.
func (db *DB) NewChunkIterator(r *IteratorRange) *ChunkIterator {
	if r == nil {
		r = &IteratorRange{}
	}
	return newChunkIterator(db, r)
}

// Close persists level.dat (when its Data is non-nil) and closes the
// underlying store, if it implements io.Closer.
func (db *DB) Close() error {
	db.ldat.Version = LevelDatVersion
	if db.ldat.Data != nil {
		db.ldat.Data.Put("LastPlayed", time.Now().Unix())
	}
	if db.ldat.Data != nil {
		b, err := SerializeLevelDat(db.ldat)
		if err != nil {
			return fmt.Errorf("mcdb: encode level.dat: %w", err)
		}
		if err := db.fs.WriteFile("level.dat_new", b); err != nil {
			return fmt.Errorf("mcdb: write level.dat_new: %w", err)
		}
		if err := db.fs.Rename("level.dat_new", "level.dat"); err != nil {
			return fmt.Errorf("mcdb: rename level.dat_new: %w", err)
		}
	}
	if c, ok := db.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// compoundValues flattens a parsed *nbt.Compound into a plain map, the
// shape entity/block-entity callers outside this package work with.
func compoundValues(c *nbt.Compound) map[string]any {
	m := make(map[string]any, c.Len())
	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		m[k] = v
	}
	return m
}
