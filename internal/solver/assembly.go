package solver

import (
	"github.com/hailam/burrsolver/internal/puzzle"
)

// frontierEntry is one partially-assembled candidate in the assembly
// search's best-first frontier.
type frontierEntry struct {
	remainingCount  int
	hinted          bool
	seq             int
	state           puzzle.PuzzleState
	remainingShapes []int
	remainingSlots  []string
}

// frontierHeap orders book-hinted entries before all others, then by
// fewest remaining shapes (the branch-and-bound priority from the
// reference solver), with FIFO order breaking any remaining tie.
type frontierHeap []*frontierEntry

func (h frontierHeap) Len() int { return len(h) }

func (h frontierHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.hinted != b.hinted {
		return a.hinted
	}
	if a.remainingCount != b.remainingCount {
		return a.remainingCount < b.remainingCount
	}
	return a.seq < b.seq
}

func (h frontierHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *frontierHeap) Push(x any) {
	*h = append(*h, x.(*frontierEntry))
}

func (h *frontierHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// seedFrontier seeds the assembly search at slot A with the largest
// shape's non-flipped orientations only: a flipped seating of the first
// piece just produces a mirror-image solution of one reachable from a
// non-flipped seating, so trying it is wasted search.
func seedFrontier(p *puzzle.Puzzle, hintSlotA *puzzle.Piece) []*frontierEntry {
	sizeOrder := p.OrderBySize()
	first := sizeOrder[0]

	remaining := make([]int, 0, len(p.Shapes)-1)
	for _, idx := range p.OrderByOrientations() {
		if idx != first {
			remaining = append(remaining, idx)
		}
	}
	remainingSlots := []string{"B", "C", "D", "E", "F"}

	var entries []*frontierEntry
	seq := 0
	for _, seat := range p.PiecesAt(first, "A") {
		if seat.Piece.IsFlipped() {
			continue
		}
		state := puzzle.PuzzleState{}.Add(seat.Piece, seat.Voxels)
		entries = append(entries, &frontierEntry{
			remainingCount:  len(remaining),
			hinted:          hintSlotA != nil && seat.Piece == *hintSlotA,
			seq:             seq,
			state:           state,
			remainingShapes: append([]int(nil), remaining...),
			remainingSlots:  append([]string(nil), remainingSlots...),
		})
		seq++
	}
	return entries
}

func without(xs []int, x int) []int {
	out := make([]int, 0, len(xs)-1)
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

func withoutSlot(xs []string, x string) []string {
	out := make([]string, 0, len(xs)-1)
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}
