package mcdb

import "encoding/binary"

// AABB is an axis-aligned integer search volume used by hardcoded spawner
// entries: inclusive low/high bounds on each axis, with low <= high.
type AABB struct {
	LX, LY, LZ int32
	HX, HY, HZ int32
}

// HardcodedSpawner pairs a search volume with the spawner kind it applies
// to.
type HardcodedSpawner struct {
	Volume AABB
	Kind   byte
}

const hardcodedSpawnerSize = 24 + 1

// ParseHardcodedSpawners reads a HardcodedSpawners record: a u32 count
// followed by that many (24-byte AABB, 1-byte kind) entries.
func ParseHardcodedSpawners(b []byte) ([]HardcodedSpawner, error) {
	if len(b) < 4 {
		return nil, ErrStructuralMismatch
	}
	count := binary.LittleEndian.Uint32(b)
	rest := b[4:]
	if uint64(len(rest)) != uint64(count)*hardcodedSpawnerSize {
		return nil, ErrStructuralMismatch
	}
	out := make([]HardcodedSpawner, count)
	for i := range out {
		e := rest[i*hardcodedSpawnerSize:]
		out[i] = HardcodedSpawner{
			Volume: AABB{
				LX: int32(binary.LittleEndian.Uint32(e[0:4])),
				LY: int32(binary.LittleEndian.Uint32(e[4:8])),
				LZ: int32(binary.LittleEndian.Uint32(e[8:12])),
				HX: int32(binary.LittleEndian.Uint32(e[12:16])),
				HY: int32(binary.LittleEndian.Uint32(e[16:20])),
				HZ: int32(binary.LittleEndian.Uint32(e[20:24])),
			},
			Kind: e[24],
		}
	}
	return out, nil
}

// SerializeHardcodedSpawners writes spawners as a HardcodedSpawners record.
// If the entry count overflows u32, the configured LengthPolicy decides
// whether to fail or saturate the written count to u32::MAX.
func SerializeHardcodedSpawners(spawners []HardcodedSpawner, opts Options) ([]byte, error) {
	count := uint64(len(spawners))
	written := count
	if count > 0xffffffff {
		if opts.LengthPolicy == LengthPolicyError {
			return nil, ErrLengthOverflow
		}
		written = 0xffffffff
	}
	out := make([]byte, 4+len(spawners)*hardcodedSpawnerSize)
	binary.LittleEndian.PutUint32(out, uint32(written))
	for i, s := range spawners {
		e := out[4+i*hardcodedSpawnerSize:]
		binary.LittleEndian.PutUint32(e[0:4], uint32(s.Volume.LX))
		binary.LittleEndian.PutUint32(e[4:8], uint32(s.Volume.LY))
		binary.LittleEndian.PutUint32(e[8:12], uint32(s.Volume.LZ))
		binary.LittleEndian.PutUint32(e[12:16], uint32(s.Volume.HX))
		binary.LittleEndian.PutUint32(e[16:20], uint32(s.Volume.HY))
		binary.LittleEndian.PutUint32(e[20:24], uint32(s.Volume.HZ))
		e[24] = s.Kind
	}
	return out, nil
}

// Width returns the AABB's inclusive extent on each axis, high - low + 1;
// a non-positive result is reported as 1 and a result above the u32 maximum
// as that maximum.
func (a AABB) Width() (x, y, z uint32) {
	return saturateWidth(a.LX, a.HX), saturateWidth(a.LY, a.HY), saturateWidth(a.LZ, a.HZ)
}

func saturateWidth(lo, hi int32) uint32 {
	w := int64(hi) - int64(lo) + 1
	if w <= 0 {
		return 1
	}
	if w > 0xffffffff {
		return 0xffffffff
	}
	return uint32(w)
}
