package nbt

import "errors"

// ErrDepthExceeded is returned when Compound/List nesting exceeds the
// configured depth limit, on both read and write.
var ErrDepthExceeded = errors.New("nbt: depth limit exceeded")

// ErrListInhomogeneous is returned by Encode when a List contains an element
// whose type doesn't match its declared Elem, unless Options.UncheckedLists
// is set.
var ErrListInhomogeneous = errors.New("nbt: list elements are not homogeneous")

// ErrUnknownTag is returned when a tag byte doesn't correspond to a known
// Type.
var ErrUnknownTag = errors.New("nbt: unknown tag type")

// ErrUnsupportedValue is returned by Encode when asked to write a Go value
// that has no corresponding NBT representation.
var ErrUnsupportedValue = errors.New("nbt: value has no NBT representation")

// ErrStructuralMismatch is returned when the stream doesn't begin with a
// Compound (or, with AllowZero, TagEnd) as the decoder's root-tag contract
// requires.
var ErrStructuralMismatch = errors.New("nbt: expected a compound at root")
