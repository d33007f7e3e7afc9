package lattice

import "fmt"

// Voxel identifies a single unit cell of the puzzle grid by its integer
// corner coordinates (an assembled piece spans -3..2 on each axis). All puzzle-level bookkeeping (required
// voxel sets, occupancy, hashing, move generation) works in this space.
type Voxel struct {
	X, Y, Z int
}

// LocalVoxel is a shape-local coordinate before it has been rotated,
// translated to a named slot, and snapped to the grid. Its components are
// stored doubled (so a center at -0.5 is stored as -1) which keeps every
// intermediate computation in MoveTo exact integer arithmetic — the
// original half-integer voxel coordinates never touch a float, so Align
// can never drift the way a floating-point floor would.
type LocalVoxel struct {
	X2, Y2, Z2 int
}

// NewLocalVoxel builds a LocalVoxel from shape-text grid indices, matching
// the coordinate convention of the shape text format: a center at
// (i-0.5, j-0.5, 2.5-k) becomes doubled (2i-1, 2j-1, 5-2k).
func NewLocalVoxel(i, j, k int) LocalVoxel {
	return LocalVoxel{2*i - 1, 2*j - 1, 5 - 2*k}
}

// MoveTo rotates the voxel by orientation n (0-7; bit 2 set means flipped
// end over end, a half turn about Y that negates x and z; the low two bits
// are a 90-degree-step rotation about the long axis) and
// translates it to the given slot position, returning the result still in
// doubled local coordinates.
func (v LocalVoxel) MoveTo(p Position, n int) (LocalVoxel, error) {
	if n < 0 || n > 7 {
		return LocalVoxel{}, fmt.Errorf("%w: %d", ErrInvalidOrientation, n)
	}

	x, y, z := v.X2, v.Y2, v.Z2
	if n > 3 {
		n -= 4
		x, z = -x, -z
	}

	switch n {
	case 1:
		x, y = -y, x
	case 2:
		x, y = -x, -y
	case 3:
		x, y = y, -x
	}

	px, py, pz := 2*p.X, 2*p.Y, 2*p.Z
	switch p.Axis {
	case AxisZ:
		return LocalVoxel{x + px, y + py, z + pz}, nil
	case AxisY:
		return LocalVoxel{x + px, -z + py, y + pz}, nil
	case AxisX:
		return LocalVoxel{z + px, y + py, -x + pz}, nil
	default:
		return LocalVoxel{}, fmt.Errorf("%w: %v", ErrInvalidAxis, p.Axis)
	}
}

// Align snaps a doubled local coordinate down to its integer grid cell,
// equivalent to floor(x/2) per axis but computed with exact integer
// division.
func (v LocalVoxel) Align() Voxel {
	return Voxel{floorDiv2(v.X2), floorDiv2(v.Y2), floorDiv2(v.Z2)}
}

func floorDiv2(a int) int {
	q := a / 2
	if a%2 != 0 && a < 0 {
		q--
	}
	return q
}

// Move shifts an aligned voxel by steps along direction d.
func (v Voxel) Move(d Direction, steps int) Voxel {
	switch d {
	case Up:
		return Voxel{v.X, v.Y + steps, v.Z}
	case Down:
		return Voxel{v.X, v.Y - steps, v.Z}
	case Left:
		return Voxel{v.X - steps, v.Y, v.Z}
	case Right:
		return Voxel{v.X + steps, v.Y, v.Z}
	case Forward:
		return Voxel{v.X, v.Y, v.Z + steps}
	case Backward:
		return Voxel{v.X, v.Y, v.Z - steps}
	default:
		return v
	}
}

// IsInside reports whether the voxel lies in the puzzle's open inner
// 5x5x5 cube (strict bounds: a voxel with any coordinate at -3 or 3 is not
// "inside").
func (v Voxel) IsInside() bool {
	return inStrictRange(v.X) && inStrictRange(v.Y) && inStrictRange(v.Z)
}

func inStrictRange(n int) bool {
	return -3 < n && n < 3
}

func (v Voxel) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}
