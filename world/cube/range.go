// Package cube holds the small position/range value types shared by the
// chunk and mcdb packages. It is a trimmed stand-in for the teacher's own
// server/block/cube package: only the pieces the codec layer needs.
package cube

// Range represents the lowest and highest valid Y coordinates of a block in
// a Dimension, both inclusive.
type Range [2]int

// Min returns the lowest valid Y value.
func (r Range) Min() int { return r[0] }

// Max returns the highest valid Y value.
func (r Range) Max() int { return r[1] }

// Height returns the number of valid Y values, min and max inclusive.
func (r Range) Height() int { return r[1] - r[0] + 1 }

// Pos represents the position of a block.
type Pos [3]int

// X returns the X coordinate of the position.
func (p Pos) X() int { return p[0] }

// Y returns the Y coordinate of the position.
func (p Pos) Y() int { return p[1] }

// Z returns the Z coordinate of the position.
func (p Pos) Z() int { return p[2] }
