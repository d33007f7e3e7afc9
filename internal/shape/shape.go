// Package shape parses burr piece shapes from their text form and
// precomputes, for each of the puzzle's six named slots, which of the
// piece's eight orientations are legal seats there.
package shape

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hailam/burrsolver/internal/lattice"
)

// VoxelState is one orientation of a shape at a slot that satisfies the
// slot's required-voxel constraint, together with the grid voxels it
// occupies once aligned.
type VoxelState struct {
	Orientation int
	Voxels      lattice.VoxelSet
}

// Shape is a piece's local voxel footprint (centered on the origin, not
// yet aligned to any slot) plus the table of orientations valid at each
// named slot.
type Shape struct {
	Voxels       []lattice.LocalVoxel
	Orientations map[string][]VoxelState
}

// Stats summarizes, per slot, how many of the 8 orientations are legal
// seats. It exists purely for diagnostics/logging.
type Stats struct {
	VoxelCount       int
	OrientationCount map[string]int
}

// Parse builds a Shape from its text representation: lines separated by
// "/", each line a row of "x" (voxel present) and "." (empty), e.g.
//
//	xxxxxx/xx..xx/x..xxx/x...xx
//
// Line i occupies local column i%2, row i/2; character position z within
// the line maps to the long-axis coordinate 2.5-z.
func Parse(text string) (*Shape, error) {
	lines := strings.Split(text, "/")
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty shape text", ErrInvalidShape)
	}

	var voxels []lattice.LocalVoxel
	for i, line := range lines {
		x := i % 2
		y := i / 2
		for z, ch := range line {
			switch ch {
			case 'x':
				voxels = append(voxels, lattice.NewLocalVoxel(x, y, z))
			case '.':
				// empty cell
			default:
				return nil, fmt.Errorf("%w: invalid character %q in line %d", ErrInvalidShape, ch, i)
			}
		}
	}

	if len(voxels) == 0 {
		return nil, fmt.Errorf("%w: no voxels in shape text %q", ErrInvalidShape, text)
	}

	s := &Shape{Voxels: voxels, Orientations: make(map[string][]VoxelState, len(lattice.SlotNames))}
	for _, name := range lattice.SlotNames {
		orientations, err := s.legalOrientations(name)
		if err != nil {
			return nil, err
		}
		s.Orientations[name] = orientations
	}

	return s, nil
}

// legalOrientations enumerates the distinct voxel footprints this shape
// produces at slot name across all 8 orientations, keeping only those that
// cover every one of the slot's required voxels.
func (s *Shape) legalOrientations(slot string) ([]VoxelState, error) {
	place, ok := lattice.Places[slot]
	if !ok {
		return nil, fmt.Errorf("shape: unknown slot %q", slot)
	}

	required := Required[slot]
	seen := make(map[string]bool)
	var out []VoxelState

	for o := 0; o < 8; o++ {
		aligned, err := s.alignAt(place, o)
		if err != nil {
			return nil, err
		}

		key := sortedKey(aligned)
		if seen[key] {
			continue
		}
		seen[key] = true

		if coversAll(aligned, required) {
			out = append(out, VoxelState{Orientation: o, Voxels: aligned})
		}
	}

	return out, nil
}

// AlignedAt returns the grid voxels this shape occupies when placed at
// position p with the given orientation.
func (s *Shape) AlignedAt(p lattice.Position, orientation int) (lattice.VoxelSet, error) {
	return s.alignAt(p, orientation)
}

func (s *Shape) alignAt(p lattice.Position, orientation int) (lattice.VoxelSet, error) {
	out := make(lattice.VoxelSet, len(s.Voxels))
	for _, local := range s.Voxels {
		moved, err := local.MoveTo(p, orientation)
		if err != nil {
			return nil, err
		}
		out[moved.Align()] = struct{}{}
	}
	return out, nil
}

func coversAll(have lattice.VoxelSet, required []lattice.Voxel) bool {
	for _, v := range required {
		if _, ok := have[v]; !ok {
			return false
		}
	}
	return true
}

func sortedKey(vs lattice.VoxelSet) string {
	voxels := vs.Slice()
	sort.Slice(voxels, func(i, j int) bool {
		a, b := voxels[i], voxels[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	var sb strings.Builder
	for _, v := range voxels {
		fmt.Fprintf(&sb, "%d,%d,%d;", v.X, v.Y, v.Z)
	}
	return sb.String()
}

// Stats reports a count of this shape's local voxels and, per slot, how
// many orientations are legal.
func (s *Shape) Stats() Stats {
	st := Stats{VoxelCount: len(s.Voxels), OrientationCount: make(map[string]int, len(s.Orientations))}
	for slot, vs := range s.Orientations {
		st.OrientationCount[slot] = len(vs)
	}
	return st
}
