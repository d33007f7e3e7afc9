// Package puzzle models the six-piece burr puzzle: placed pieces, puzzle
// states, the move generator, and the catalog of shapes being assembled.
package puzzle

import (
	"fmt"

	"github.com/hailam/burrsolver/internal/lattice"
)

// Piece is a single shape seated at a position with an orientation. Piece
// values are comparable and are used directly as map keys (for move
// membership tests) the way the reference implementation uses them as set
// members.
type Piece struct {
	ShapeID     int
	Position    lattice.Position
	Orientation int
}

// IsFlipped reports whether the orientation includes the long-axis flip
// (orientations 4-7).
func (p Piece) IsFlipped() bool {
	return p.Orientation > 3
}

// Move returns the piece translated by steps along direction d. The
// orientation and shape are unaffected; only the seat position changes.
func (p Piece) Move(d lattice.Direction, steps int) Piece {
	return Piece{p.ShapeID, p.Position.Move(d, steps), p.Orientation}
}

// String renders the piece using the puzzle's slot-letter notation when
// seated at a named slot (e.g. "A1a" = slot A, shape index 0, orientation
// 0), falling back to an explicit coordinate for a piece mid-disassembly.
func (p Piece) String() string {
	o := rune('a' + p.Orientation)
	for _, name := range lattice.SlotNames {
		if lattice.Places[name] == p.Position {
			return fmt.Sprintf("%s%d%c", name, p.ShapeID+1, o)
		}
	}
	return fmt.Sprintf("(%d,%d,%d,%s)%d%c", p.Position.X, p.Position.Y, p.Position.Z, p.Position.Axis, p.ShapeID+1, o)
}
