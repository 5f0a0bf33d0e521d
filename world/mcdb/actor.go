package mcdb

import (
	"bytes"
	"fmt"

	"github.com/df-mc/mcdbcodec/world/nbt"
)

// ParseConcatenatedCompounds reads a run of one or more back-to-back named
// NBT compounds at the root, the shape shared by actor records and
// block/entity records. A payload with more than one compound is a known
// bug-state some Bedrock versions produce ("Multiple"); callers that care
// can check len(result) > 1 themselves.
func ParseConcatenatedCompounds(b []byte, e nbt.Encoding) ([]*nbt.Compound, error) {
	buf := bytes.NewBuffer(b)
	var out []*nbt.Compound
	for buf.Len() > 0 {
		dec := nbt.NewDecoderWithEncoding(buf, e)
		c, _, err := dec.DecodeCompound()
		if err != nil {
			return nil, fmt.Errorf("mcdb: decode compound %d: %w", len(out), err)
		}
		out = append(out, c)
	}
	return out, nil
}

// SerializeConcatenatedCompounds writes cs back-to-back as a
// ParseConcatenatedCompounds-compatible payload.
func SerializeConcatenatedCompounds(cs []*nbt.Compound, e nbt.Encoding) ([]byte, error) {
	buf := new(bytes.Buffer)
	for i, c := range cs {
		enc := nbt.NewEncoderWithEncoding(buf, e)
		if err := enc.EncodeCompound("", c); err != nil {
			return nil, fmt.Errorf("mcdb: encode compound %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
