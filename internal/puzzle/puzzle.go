package puzzle

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hailam/burrsolver/internal/lattice"
	"github.com/hailam/burrsolver/internal/shape"
)

// ErrInvalidAssemblyText is returned by LoadState when an assembly
// description can't be parsed.
var ErrInvalidAssemblyText = errors.New("puzzle: invalid assembly text")

// Puzzle is a catalog of six shapes together with the current placement
// of some subset of them.
type Puzzle struct {
	Shapes []*shape.Shape
	pieces []Piece
	voxels lattice.VoxelSet
}

// FromText builds an unassembled Puzzle (no pieces placed) from six shape
// text lines.
func FromText(lines []string) (*Puzzle, error) {
	shapes := make([]*shape.Shape, len(lines))
	for i, line := range lines {
		s, err := shape.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("puzzle: shape %d: %w", i, err)
		}
		shapes[i] = s
	}
	return &Puzzle{Shapes: shapes, voxels: lattice.VoxelSet{}}, nil
}

// State returns the puzzle's current placement as a PuzzleState.
func (p *Puzzle) State() PuzzleState {
	return PuzzleState{Pieces: p.pieces, Voxels: p.voxels}
}

// ToState returns a new Puzzle sharing this one's shape catalog but with
// the given placement.
func (p *Puzzle) ToState(s PuzzleState) *Puzzle {
	return &Puzzle{Shapes: p.Shapes, pieces: s.Pieces, voxels: s.Voxels}
}

// OrderBySize returns shape indices ordered by descending local voxel
// count — the largest piece tends to be the best assembly-search seed.
func (p *Puzzle) OrderBySize() []int {
	order := make([]int, len(p.Shapes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(p.Shapes[order[i]].Voxels) > len(p.Shapes[order[j]].Voxels)
	})
	return order
}

// OrderByOrientations returns shape indices ordered by ascending count of
// legal orientations at slot A, which limits branching when seeding the
// remaining pieces.
func (p *Puzzle) OrderByOrientations() []int {
	order := make([]int, len(p.Shapes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(p.Shapes[order[i]].Orientations["A"]) < len(p.Shapes[order[j]].Orientations["A"])
	})
	return order
}

// PieceAtSlot is one legal way to seat a shape at a named slot.
type PieceAtSlot struct {
	Piece  Piece
	Voxels lattice.VoxelSet
}

// PiecesAt returns every legal seat for shape s at the named slot.
func (p *Puzzle) PiecesAt(s int, slot string) []PieceAtSlot {
	place := lattice.Places[slot]
	orientations := p.Shapes[s].Orientations[slot]
	out := make([]PieceAtSlot, len(orientations))
	for i, vs := range orientations {
		out[i] = PieceAtSlot{
			Piece:  Piece{ShapeID: s, Position: place, Orientation: vs.Orientation},
			Voxels: vs.Voxels,
		}
	}
	return out
}

// VoxelsFor returns the grid voxels piece currently occupies.
func (p *Puzzle) VoxelsFor(piece Piece) (lattice.VoxelSet, error) {
	return p.Shapes[piece.ShapeID].AlignedAt(piece.Position, piece.Orientation)
}

// CanPlace reports whether piece may be added without overlapping any
// currently occupied voxel.
func (p *Puzzle) CanPlace(piece Piece) (bool, error) {
	voxels, err := p.VoxelsFor(piece)
	if err != nil {
		return false, err
	}
	return p.voxels.IsDisjoint(voxels), nil
}

// InsideCount returns how many of piece's voxels lie inside the puzzle
// frame once placed.
func (p *Puzzle) InsideCount(piece Piece) (int, error) {
	voxels, err := p.VoxelsFor(piece)
	if err != nil {
		return 0, err
	}
	return voxels.InsideCount(), nil
}

// Score is the total number of currently occupied voxels lying inside the
// puzzle frame — the heuristic used by the A* disassembly search.
func (p *Puzzle) Score() int {
	return p.voxels.InsideCount()
}

// Level reports the burr puzzle's level: 105 minus the sum of all six
// shapes' local voxel counts, so pieces totalling 104 voxels give level 1.
func (p *Puzzle) Level() int {
	total := 0
	for _, s := range p.Shapes {
		total += len(s.Voxels)
	}
	return 105 - total
}

// Move applies a move: pieces in the move set are translated; a piece
// that ends up with zero voxels inside the frame is considered fully
// removed and dropped from the returned state.
func (p *Puzzle) Move(m Move) (*Puzzle, error) {
	newPieces := make([]Piece, 0, len(p.pieces))
	newVoxels := p.voxels.Clone()

	for _, piece := range p.pieces {
		if _, moving := m.Pieces[piece]; !moving {
			newPieces = append(newPieces, piece)
			continue
		}

		oldVoxels, err := p.VoxelsFor(piece)
		if err != nil {
			return nil, err
		}
		newVoxels = newVoxels.Without(oldVoxels)

		moved := piece.Move(m.Direction, m.Steps)
		movedVoxels, err := p.VoxelsFor(moved)
		if err != nil {
			return nil, err
		}
		if movedVoxels.InsideCount() > 0 {
			newPieces = append(newPieces, moved)
			newVoxels = newVoxels.Union(movedVoxels)
		}
	}

	return &Puzzle{Shapes: p.Shapes, pieces: newPieces, voxels: newVoxels}, nil
}

// LoadState parses an assembly text (space-separated piece notations such
// as "A1a B2c") into a PuzzleState.
func (p *Puzzle) LoadState(text string) (PuzzleState, error) {
	parts := strings.Fields(text)
	pieces := make([]Piece, 0, len(parts))
	voxels := lattice.VoxelSet{}

	for _, part := range parts {
		if len(part) < 3 {
			return PuzzleState{}, fmt.Errorf("%w: token %q too short", ErrInvalidAssemblyText, part)
		}
		slot := part[0:1]
		place, ok := lattice.Places[slot]
		if !ok {
			return PuzzleState{}, fmt.Errorf("%w: unknown slot %q", ErrInvalidAssemblyText, slot)
		}
		shapeNum, err := strconv.Atoi(part[1 : len(part)-1])
		if err != nil {
			return PuzzleState{}, fmt.Errorf("%w: bad shape number in %q: %v", ErrInvalidAssemblyText, part, err)
		}
		orientationChar := part[len(part)-1]
		orientation := int(orientationChar) - 'a'
		if orientation < 0 || orientation > 7 {
			return PuzzleState{}, fmt.Errorf("%w: bad orientation in %q", ErrInvalidAssemblyText, part)
		}

		piece := Piece{ShapeID: shapeNum - 1, Position: place, Orientation: orientation}
		if piece.ShapeID < 0 || piece.ShapeID >= len(p.Shapes) {
			return PuzzleState{}, fmt.Errorf("%w: shape index %d out of range in %q", ErrInvalidAssemblyText, piece.ShapeID, part)
		}

		pv, err := p.VoxelsFor(piece)
		if err != nil {
			return PuzzleState{}, fmt.Errorf("%w: %v", ErrInvalidAssemblyText, err)
		}
		voxels = voxels.Union(pv)
		pieces = append(pieces, piece)
	}

	return PuzzleState{Pieces: pieces, Voxels: voxels}, nil
}
