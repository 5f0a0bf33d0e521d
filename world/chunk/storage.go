package chunk

import (
	"errors"
	"fmt"
)

// ErrUnsupportedBitsPerIndex is returned when a paletted storage header
// declares a bits-per-index width outside validBitsPerIndex.
var ErrUnsupportedBitsPerIndex = errors.New("chunk: unsupported bits-per-index")

// validBitsPerIndex lists the wire widths used to pack each of a paletted storage's
// 4096 cell indices. Only these nine widths are legal; 0 means every cell
// shares the palette's single entry and no index array is written at all.
var validBitsPerIndex = [...]int{0, 1, 2, 3, 4, 5, 6, 8, 16}

// isValidBitsPerIndex reports whether bpi is one of validBitsPerIndex's
// widths.
func isValidBitsPerIndex(bpi int) bool {
	for _, v := range validBitsPerIndex {
		if bpi == v {
			return true
		}
	}
	return false
}

// bitsPerIndexFor returns the narrowest validBitsPerIndex entry that can
// address paletteLen distinct values.
func bitsPerIndexFor(paletteLen int) int {
	if paletteLen <= 1 {
		return 0
	}
	for _, bpi := range validBitsPerIndex[1:] {
		if 1<<uint(bpi) >= paletteLen {
			return bpi
		}
	}
	return 16
}

// indexesPerWord returns how many bpi-wide cells are packed into one u32
// word, rounding down: the remaining bits of each word are padding.
func indexesPerWord(bpi int) int {
	if bpi == 0 {
		return 0
	}
	return 32 / bpi
}

func wordsForIndices(bpi, n int) int {
	if bpi == 0 {
		return 0
	}
	ipw := indexesPerWord(bpi)
	return (n + ipw - 1) / ipw
}

// PalettedStorage is the bit-packed index array plus palette described for
// a single 16x16x16 layer of block or biome data: 4096 indices, each
// bitsPerIndex wide, packed low-bit-first into u32 words, resolved through a
// deduplicated palette of actual values.
type PalettedStorage struct {
	bitsPerIndex int
	words        []uint32
	palette      []any
	// paddingPreserved records whether padding bits are kept verbatim.
	// Nothing in this package sets or reads it: decoded words, padding bits
	// included, are re-emitted exactly as read.
	paddingPreserved bool
}

const cellCount = 16 * 16 * 16

// NewPalettedStorage builds a PalettedStorage from a flat 4096-entry index
// array (values 0..len(palette)-1) and the palette they index into.
func NewPalettedStorage(indices [cellCount]uint16, palette []any) *PalettedStorage {
	bpi := bitsPerIndexFor(len(palette))
	p := &PalettedStorage{bitsPerIndex: bpi, palette: palette}
	if bpi == 0 {
		return p
	}
	p.words = make([]uint32, wordsForIndices(bpi, cellCount))
	ipw := indexesPerWord(bpi)
	mask := uint32(1)<<uint(bpi) - 1
	for i, v := range indices {
		word, shift := i/ipw, uint(i%ipw)*uint(bpi)
		p.words[word] |= (uint32(v) & mask) << shift
	}
	return p
}

// newPackedPalettedStorage wraps already bit-packed words and a decoded
// palette, as produced by the wire decoder.
func newPackedPalettedStorage(bpi int, words []uint32, palette []any) *PalettedStorage {
	return &PalettedStorage{bitsPerIndex: bpi, words: words, palette: palette}
}

// At returns the resolved value stored at flat cell index i (0..4095).
func (p *PalettedStorage) At(i int) any {
	if p.bitsPerIndex == 0 {
		if len(p.palette) == 0 {
			return nil
		}
		return p.palette[0]
	}
	ipw := indexesPerWord(p.bitsPerIndex)
	word, shift := i/ipw, uint(i%ipw)*uint(p.bitsPerIndex)
	mask := uint32(1)<<uint(p.bitsPerIndex) - 1
	idx := (p.words[word] >> shift) & mask
	if int(idx) >= len(p.palette) {
		return nil
	}
	return p.palette[idx]
}

// Index returns the raw palette index stored at flat cell i, without
// resolving it through the palette.
func (p *PalettedStorage) Index(i int) uint16 {
	if p.bitsPerIndex == 0 {
		return 0
	}
	ipw := indexesPerWord(p.bitsPerIndex)
	word, shift := i/ipw, uint(i%ipw)*uint(p.bitsPerIndex)
	mask := uint32(1)<<uint(p.bitsPerIndex) - 1
	return uint16((p.words[word] >> shift) & mask)
}

// BitsPerIndex returns the wire width used for each of this storage's 4096
// cell indices.
func (p *PalettedStorage) BitsPerIndex() int { return p.bitsPerIndex }

// Palette returns the deduplicated value palette this storage indexes into.
func (p *PalettedStorage) Palette() []any { return p.palette }

// Words returns the raw packed index words, for encoders that need to
// re-emit them verbatim (bit-perfect fidelity).
func (p *PalettedStorage) Words() []uint32 { return p.words }

func (p *PalettedStorage) String() string {
	return fmt.Sprintf("PalettedStorage{bpi=%d, palette=%d}", p.bitsPerIndex, len(p.palette))
}
