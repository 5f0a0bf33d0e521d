package chunk

import (
	"bytes"
	"fmt"

	"github.com/df-mc/mcdbcodec/world/nbt"
)

// decodeConcatenatedBlockEntities reads a run of back-to-back, uncompressed
// NBT compounds from buf until it is exhausted: the shape used both by the
// network chunk frame's trailing block-entity data and by the disk block
// entity record.
func decodeConcatenatedBlockEntities(buf *bytes.Buffer) ([]map[string]any, error) {
	var out []map[string]any
	for buf.Len() > 0 {
		dec := nbt.NewDecoderWithEncoding(buf, nbt.NetworkLittleEndian)
		dec.SetAllowZero(true)
		blockNBT := make(map[string]any)
		if err := dec.Decode(&blockNBT); err != nil {
			return nil, fmt.Errorf("chunk: decode block entity: %w", err)
		}
		if len(blockNBT) > 0 {
			out = append(out, blockNBT)
		}
	}
	return out, nil
}

// encodeConcatenatedCompounds writes each of vs as a back-to-back
// uncompressed NBT compound using the given encoding.
func encodeConcatenatedCompounds(buf *bytes.Buffer, e nbt.Encoding, vs []map[string]any) error {
	for i, v := range vs {
		enc := nbt.NewEncoderWithEncoding(buf, e)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("chunk: encode block entity %d: %w", i, err)
		}
	}
	return nil
}
