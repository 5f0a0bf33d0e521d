package mcdb

import "errors"

var (
	// ErrStructuralMismatch is returned when a record's byte length doesn't
	// match the fixed or computed length its shape requires.
	ErrStructuralMismatch = errors.New("mcdb: structural mismatch")
	// ErrEnumRange is returned when an enum-valued field holds a number
	// outside its recognized range.
	ErrEnumRange = errors.New("mcdb: value out of recognized range")
	// ErrLengthOverflow is returned instead of silently truncating a count
	// field under LengthPolicyError.
	ErrLengthOverflow = errors.New("mcdb: length does not fit in its wire width")
	// ErrUnknownChecksumTag is returned when a checksums record contains a
	// (tag, subtag) pair the catalog doesn't recognize.
	ErrUnknownChecksumTag = errors.New("mcdb: unrecognized checksum (tag, subtag) pair")
)
