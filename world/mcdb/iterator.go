package mcdb

import "github.com/df-mc/mcdbcodec/world"

// IteratorRange bounds a ChunkIterator to a rectangular region of chunk
// columns. A zero-value IteratorRange imposes no bound.
type IteratorRange struct {
	Min, Max world.ChunkPos
	Bounded  bool
}

func (r *IteratorRange) contains(pos world.ChunkPos) bool {
	if !r.Bounded {
		return true
	}
	return pos.X() >= r.Min.X() && pos.X() <= r.Max.X() && pos.Z() >= r.Min.Z() && pos.Z() <= r.Max.Z()
}

// ChunkIterator walks every distinct chunk-column key present in a DB's
// store, skipping duplicate tag records for the same column.
type ChunkIterator struct {
	db    *DB
	it    KeyValueIterator
	rng   *IteratorRange
	err   error
	pos   world.ChunkPos
	dim   world.DimensionIdentity
	seen  map[world.ChunkPos]struct{}
	valid bool
}

func newChunkIterator(db *DB, r *IteratorRange) *ChunkIterator {
	it, err := db.store.Iter()
	return &ChunkIterator{db: db, it: it, rng: r, err: err, seen: make(map[world.ChunkPos]struct{})}
}

// Next advances the iterator to the next distinct chunk column within
// range, returning false once exhausted or on error (check Error).
func (c *ChunkIterator) Next() bool {
	if c.err != nil || c.it == nil {
		return false
	}
	for c.it.Next() {
		pos, dim, _, _, ok := ParseChunkKeyPrefix(c.it.Key())
		if !ok || !c.rng.contains(pos) {
			continue
		}
		key := pos
		if _, dup := c.seen[key]; dup {
			continue
		}
		c.seen[key] = struct{}{}
		c.pos, c.dim, c.valid = pos, dim, true
		return true
	}
	c.err = c.it.Error()
	return false
}

// Position returns the current chunk column position.
func (c *ChunkIterator) Position() world.ChunkPos { return c.pos }

// Dimension returns the current chunk column's dimension identity.
func (c *ChunkIterator) Dimension() world.DimensionIdentity { return c.dim }

// Error returns any error encountered during iteration.
func (c *ChunkIterator) Error() error { return c.err }

// Release releases resources held by the iterator. It must be called once
// iteration is complete.
func (c *ChunkIterator) Release() {
	if c.it != nil {
		c.it.Release()
	}
}
