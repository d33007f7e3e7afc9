package lattice

// Position is the placement of a piece: an integer grid offset plus the
// long axis its local orientation frame is realigned to.
type Position struct {
	X, Y, Z int
	Axis    Axis
}

// Move returns the position shifted by steps along direction d.
func (p Position) Move(d Direction, steps int) Position {
	switch d {
	case Up:
		return Position{p.X, p.Y + steps, p.Z, p.Axis}
	case Down:
		return Position{p.X, p.Y - steps, p.Z, p.Axis}
	case Left:
		return Position{p.X - steps, p.Y, p.Z, p.Axis}
	case Right:
		return Position{p.X + steps, p.Y, p.Z, p.Axis}
	case Forward:
		return Position{p.X, p.Y, p.Z + steps, p.Axis}
	case Backward:
		return Position{p.X, p.Y, p.Z - steps, p.Axis}
	default:
		return p
	}
}

// Places holds the six named slots a piece may be seated at, with the
// exact coordinates and axes the burr frame requires. These values are
// load-bearing: changing any of them changes which orientations satisfy
// the required-voxel check in package shape.
var Places = map[string]Position{
	"A": {0, -1, 0, AxisZ},
	"B": {0, 0, -1, AxisX},
	"C": {-1, 0, 0, AxisY},
	"D": {0, 0, 1, AxisX},
	"E": {1, 0, 0, AxisY},
	"F": {0, 1, 0, AxisZ},
}

// SlotNames lists the six slot letters in the fixed order callers should
// iterate them for deterministic output.
var SlotNames = [6]string{"A", "B", "C", "D", "E", "F"}
