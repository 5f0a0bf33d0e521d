package mcdb

import (
	"sort"

	"github.com/df-mc/mcdbcodec/world"
)

// ParseBorderBlocks reads a BorderBlocks record: a count byte (0 means 256,
// since an empty set is never serialized) followed by that many packed
// (z<<4)|x column positions.
func ParseBorderBlocks(b []byte) ([]world.ColumnPos, error) {
	if len(b) == 0 {
		return nil, nil
	}
	count := int(b[0])
	if count == 0 {
		count = 256
	}
	if len(b) != 1+count {
		return nil, ErrStructuralMismatch
	}
	out := make([]world.ColumnPos, count)
	for i, v := range b[1:] {
		out[i] = world.UnpackColumnPos(v)
	}
	return out, nil
}

// SerializeBorderBlocks writes cols as a BorderBlocks record. An empty set
// serializes to zero bytes rather than a zero-length-payload record, per the
// format's own handling of the empty case.
func SerializeBorderBlocks(cols []world.ColumnPos, opts Options) []byte {
	if len(cols) == 0 {
		return nil
	}
	if opts.Fidelity == Semantic {
		cols = append([]world.ColumnPos(nil), cols...)
		sort.Slice(cols, func(i, j int) bool { return cols[i].Pack() < cols[j].Pack() })
	}
	count := len(cols)
	header := byte(count)
	if count == 256 {
		header = 0
	}
	out := make([]byte, 1+count)
	out[0] = header
	for i, c := range cols {
		out[1+i] = c.Pack()
	}
	return out
}
