// Package leveldb adapts github.com/df-mc/goleveldb into the mcdb.KeyValueStore
// interface, so the record catalog never imports a storage-engine-specific
// error or iterator type.
package leveldb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/iterator"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/mcdbcodec/world/mcdb"
)

// OpenWorld opens (creating if absent) the world directory at dir: a
// goleveldb database under dir/db plus conf's level.dat handling, bundled
// into a ready-to-use *mcdb.DB.
func OpenWorld(conf mcdb.Config, dir string) (*mcdb.DB, error) {
	if err := os.MkdirAll(filepath.Join(dir, "db"), 0755); err != nil {
		return nil, fmt.Errorf("mcdb/leveldb: open %s: %w", dir, err)
	}
	store, err := Open(filepath.Join(dir, "db"))
	if err != nil {
		return nil, fmt.Errorf("mcdb/leveldb: open %s: %w", dir, err)
	}
	return conf.OpenWithStore(store, dir)
}

// Store wraps a *leveldb.DB to satisfy mcdb.KeyValueStore.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a goleveldb database at dir.
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{Compression: opt.NoCompression})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get implements mcdb.KeyValueStore.
func (s *Store) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, mcdb.ErrNotFound
	}
	return v, err
}

// Put implements mcdb.KeyValueStore.
func (s *Store) Put(key, value []byte) error { return s.db.Put(key, value, nil) }

// Delete implements mcdb.KeyValueStore.
func (s *Store) Delete(key []byte) error { return s.db.Delete(key, nil) }

// Iter implements mcdb.KeyValueStore.
func (s *Store) Iter() (mcdb.KeyValueIterator, error) {
	return &storeIterator{it: s.db.NewIterator(nil, nil)}, nil
}

// Close releases the underlying database file handles.
func (s *Store) Close() error { return s.db.Close() }

type storeIterator struct{ it iterator.Iterator }

func (i *storeIterator) Next() bool    { return i.it.Next() }
func (i *storeIterator) Key() []byte   { return i.it.Key() }
func (i *storeIterator) Value() []byte { return i.it.Value() }
func (i *storeIterator) Error() error  { return i.it.Error() }
func (i *storeIterator) Release()      { i.it.Release() }
