package puzzle

import "github.com/hailam/burrsolver/internal/lattice"

// Move is a rigid translation of a subset of pieces in one direction.
// Steps greater than 1 only occur for a "removal" move: the subset
// leaves the puzzle frame entirely in a single hop rather than stepping
// through it one grid cell at a time.
type Move struct {
	Pieces    map[Piece]struct{}
	Direction lattice.Direction
	Steps     int
}

// MoveResult pairs a move with the state it produces.
type MoveResult struct {
	Move  Move
	State PuzzleState
}

// ValidMoves enumerates every legal move from the current state.
//
// When more than half the shapes are placed, subsets of size 1 up to
// half the placed piece count are tried (a jammed burr often requires
// several pieces to slide together before any single piece is free);
// otherwise only single-piece moves are considered, since once few
// pieces remain in a disassembly each one leaves on its own. Subsets and directions are
// enumerated in a fixed, index-ascending order so two calls against the
// same state produce moves in the same order.
func (p *Puzzle) ValidMoves() ([]MoveResult, error) {
	n := len(p.pieces)
	maxSize := 1
	if n > len(p.Shapes)/2 {
		maxSize = n / 2
	}

	var results []MoveResult
	for size := 1; size <= maxSize; size++ {
		for _, combo := range combinations(n, size) {
			subsetSet := make(map[Piece]struct{}, size)
			subsetVoxels := lattice.VoxelSet{}
			for _, idx := range combo {
				piece := p.pieces[idx]
				subsetSet[piece] = struct{}{}
				voxels, err := p.VoxelsFor(piece)
				if err != nil {
					return nil, err
				}
				subsetVoxels = subsetVoxels.Union(voxels)
			}
			oldVoxels := p.voxels.Without(subsetVoxels)

			for _, d := range lattice.Directions {
				steps, isOutside := slideDistance(subsetVoxels, oldVoxels, d)
				if steps == 0 {
					continue
				}
				if !isOutside {
					steps = 1
				}

				move := Move{Pieces: subsetSet, Direction: d, Steps: steps}
				next, err := p.Move(move)
				if err != nil {
					return nil, err
				}
				results = append(results, MoveResult{Move: move, State: next.State()})
			}
		}
	}

	return results, nil
}

// slideDistance walks a moving subset one grid cell at a time in
// direction d until it either collides with a stationary voxel (steps
// stops at the last collision-free distance) or leaves the puzzle frame
// entirely (isOutside becomes true, and steps is the distance of that
// final hop). A result of 0 steps means the subset cannot move that way
// at all.
func slideDistance(subsetVoxels, oldVoxels lattice.VoxelSet, d lattice.Direction) (steps int, isOutside bool) {
	for {
		moved := subsetVoxels.Shift(d, steps+1)
		if !moved.IsDisjoint(oldVoxels) {
			return steps, isOutside
		}
		steps++
		if !moved.AnyInside() {
			return steps, true
		}
	}
}

// combinations returns every size-element subset of {0,...,n-1}, each as
// an ascending slice of indices, enumerated in lexicographic order.
func combinations(n, size int) [][]int {
	if size <= 0 || size > n {
		return nil
	}

	var out [][]int
	combo := make([]int, size)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == size {
			picked := make([]int, size)
			copy(picked, combo)
			out = append(out, picked)
			return
		}
		for i := start; i <= n-(size-depth); i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
