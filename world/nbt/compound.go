package nbt

import "sort"

// Compound is an ordered mapping from name to tag value. Insertion order is
// preserved across Put calls, matching the wire's own ordering; Sort (used by
// the metadata dictionary's fingerprint, and by semantic-fidelity
// normalization of other records) produces a key-sorted copy without
// mutating the receiver.
type Compound struct {
	keys   []string
	values map[string]any
}

// NewCompound returns an empty, ready to use Compound.
func NewCompound() *Compound {
	return &Compound{values: make(map[string]any)}
}

// Put inserts or overwrites the value for key, appending key to the
// insertion order the first time it's seen.
func (c *Compound) Put(key string, v any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
}

// Get returns the value stored for key, if any.
func (c *Compound) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Delete removes key, if present.
func (c *Compound) Delete(key string) {
	if _, ok := c.values[key]; !ok {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.keys) }

// Keys returns the keys in insertion order. The slice must not be mutated.
func (c *Compound) Keys() []string { return c.keys }

// Sort returns a new Compound holding the same entries as c, recursively
// sorted by key (stable on ties), and with every nested Compound likewise
// sorted. Lists are left as-is: the source game never sorts list
// elements, only compound keys, and this codec preserves that asymmetry
// exactly rather than guessing at a "more consistent" rule.
func (c *Compound) Sort() *Compound {
	out := NewCompound()
	keys := append([]string(nil), c.keys...)
	sort.SliceStable(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		out.Put(k, sortValue(c.values[k]))
	}
	return out
}

func sortValue(v any) any {
	switch t := v.(type) {
	case *Compound:
		return t.Sort()
	case *List:
		values := make([]any, len(t.Values))
		for i, e := range t.Values {
			values[i] = sortValue(e)
		}
		return &List{Elem: t.Elem, Values: values}
	default:
		return v
	}
}

// Clone returns a deep copy of c.
func (c *Compound) Clone() *Compound {
	out := NewCompound()
	for _, k := range c.keys {
		out.Put(k, cloneValue(c.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Compound:
		return t.Clone()
	case *List:
		values := make([]any, len(t.Values))
		for i, e := range t.Values {
			values[i] = cloneValue(e)
		}
		return &List{Elem: t.Elem, Values: values}
	case []byte:
		return append([]byte(nil), t...)
	case []int32:
		return append([]int32(nil), t...)
	case []int64:
		return append([]int64(nil), t...)
	default:
		return v
	}
}
