package mcdb

import "encoding/binary"

// FinalizationStage is the generation stage a chunk has reached, stored
// under TagFinalizedState.
type FinalizationStage uint32

const (
	NeedsInstaticking FinalizationStage = iota
	NeedsPopulation
	Done
)

// ParseFinalizedState reads a FinalizedState record: exactly 4
// little-endian bytes mapped to one of the three finalization stages.
func ParseFinalizedState(b []byte) (FinalizationStage, error) {
	if len(b) != 4 {
		return 0, ErrStructuralMismatch
	}
	v := binary.LittleEndian.Uint32(b)
	if v > uint32(Done) {
		return 0, ErrEnumRange
	}
	return FinalizationStage(v), nil
}

// SerializeFinalizedState writes s as a 4-byte FinalizedState record.
func SerializeFinalizedState(s FinalizationStage) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(s))
	return b
}
