package world

import (
	"fmt"

	"github.com/df-mc/mcdbcodec/world/cube"
)

// DimensionKind distinguishes the four forms a dimension identity can take on
// the wire: the three vanilla dimensions, a
// custom numeric dimension (i32), or a custom named dimension (string).
type DimensionKind uint8

const (
	DimensionOverworld DimensionKind = iota
	DimensionNether
	DimensionEnd
	DimensionCustomNumeric
	DimensionCustomNamed
)

// DimensionIdentity is the tagged union of either one of the
// three vanilla dimensions, or a custom numeric/named dimension carried by
// some third-party world generators.
type DimensionIdentity struct {
	Kind   DimensionKind
	Custom int32  // valid when Kind == DimensionCustomNumeric
	Name   string // valid when Kind == DimensionCustomNamed
}

// DimIdentityOverworld, DimIdentityNether and DimIdentityEnd are the three
// vanilla DimensionIdentity values.
var (
	DimIdentityOverworld = DimensionIdentity{Kind: DimensionOverworld}
	DimIdentityNether    = DimensionIdentity{Kind: DimensionNether}
	DimIdentityEnd       = DimensionIdentity{Kind: DimensionEnd}
)

// ParseNumericDimension decodes the numeric wire family: 0/1/2 for the
// vanilla dimensions, anything else is a DimensionCustomNumeric.
func ParseNumericDimension(v uint32) DimensionIdentity {
	switch v {
	case 0:
		return DimIdentityOverworld
	case 1:
		return DimIdentityNether
	case 2:
		return DimIdentityEnd
	default:
		return DimensionIdentity{Kind: DimensionCustomNumeric, Custom: int32(v)}
	}
}

// EncodeNumeric returns the numeric wire family's u32 value for d; it panics
// if d is a named custom dimension, which has no defined numeric encoding.
func (d DimensionIdentity) EncodeNumeric() uint32 {
	switch d.Kind {
	case DimensionOverworld:
		return 0
	case DimensionNether:
		return 1
	case DimensionEnd:
		return 2
	case DimensionCustomNumeric:
		return uint32(d.Custom)
	default:
		panic(fmt.Sprintf("world: dimension %v has no numeric wire form", d))
	}
}

// ParseNamedDimension decodes the named wire family: the Bedrock
// "Overworld"/"Nether"/"TheEnd" strings map to the vanilla variants, anything
// else is a DimensionCustomNamed.
func ParseNamedDimension(name string) DimensionIdentity {
	switch name {
	case "Overworld":
		return DimIdentityOverworld
	case "Nether":
		return DimIdentityNether
	case "TheEnd":
		return DimIdentityEnd
	default:
		return DimensionIdentity{Kind: DimensionCustomNamed, Name: name}
	}
}

// EncodeNamed returns the named wire family's string for d.
func (d DimensionIdentity) EncodeNamed() string {
	switch d.Kind {
	case DimensionOverworld:
		return "Overworld"
	case DimensionNether:
		return "Nether"
	case DimensionEnd:
		return "TheEnd"
	case DimensionCustomNamed:
		return d.Name
	default:
		panic(fmt.Sprintf("world: dimension %v has no named wire form", d))
	}
}

// IsOverworld reports whether d is the Overworld, which is the dimension an
// absent/None optional-dimension value denotes.
func (d DimensionIdentity) IsOverworld() bool { return d.Kind == DimensionOverworld }

// DefaultRange returns the vertical chunk range the vanilla client assumes
// for d. ok is false for a custom dimension, whose range a world generator
// is free to define however it likes; callers must supply their own in that
// case rather than guess.
func (d DimensionIdentity) DefaultRange() (r cube.Range, ok bool) {
	switch d.Kind {
	case DimensionOverworld:
		return cube.Range{-64, 319}, true
	case DimensionNether:
		return cube.Range{0, 127}, true
	case DimensionEnd:
		return cube.Range{0, 255}, true
	default:
		return cube.Range{}, false
	}
}
