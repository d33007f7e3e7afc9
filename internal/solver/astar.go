package solver

import (
	"container/heap"
	"context"

	"github.com/hailam/burrsolver/internal/puzzle"
	"github.com/hailam/burrsolver/internal/remainder"
)

// pqItem is one entry in the A* open set, ordered by f-score, then by how
// many times the remainder prober has already seen the state it leads to
// (fresher small-remainder states are explored first, since a state the
// prober has already flagged as frequently revisited is more likely to sit
// in a part of the graph the search is churning over), then by insertion
// sequence as the final tiebreaker (matching the reference implementation's
// reliance on heapq's stable tuple comparison, made explicit here instead of
// implicit in a tuple).
type pqItem struct {
	f        int
	revisits int
	seq      int
	hash     uint64
}

type pqHeap []*pqItem

func (h pqHeap) Len() int { return len(h) }
func (h pqHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].revisits != h[j].revisits {
		return h[i].revisits < h[j].revisits
	}
	return h[i].seq < h[j].seq
}
func (h pqHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pqHeap) Push(x any)         { *h = append(*h, x.(*pqItem)) }
func (h *pqHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type cameFromEntry struct {
	fromHash  uint64
	fromState puzzle.PuzzleState
	move      puzzle.Move
}

// disassemble runs A* over puzzle states reachable by valid moves from
// p's current state, minimizing move count, until it reaches the fully
// empty state (every piece removed). The heuristic (voxels still inside
// the frame) is not admissible in general, so the path found is a valid
// disassembly but not guaranteed shortest — matching the reference
// implementation's documented behavior. logf receives A* lifecycle events
// (start, stop reason, a revisit summary on success); a nil logf is fine.
func disassemble(ctx context.Context, p *puzzle.Puzzle, prober *remainder.Prober, logf func(string, ...any)) ([]Step, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	start := p.State()
	startHash := start.Hash()

	logf("[astar] start: %d pieces placed, score %d", len(start.Pieces), p.Score())

	gScore := map[uint64]int{startHash: 0}
	fScore := map[uint64]int{startHash: p.Score()}
	statesByHash := map[uint64]puzzle.PuzzleState{startHash: start}
	cameFrom := map[uint64]cameFromEntry{}
	visited := map[uint64]bool{}

	open := &pqHeap{{f: fScore[startHash], seq: 0, hash: startHash}}
	heap.Init(open)
	seq := 1
	expanded := 0

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			logf("[astar] stop: cancelled after expanding %d states", expanded)
			return nil, ErrCancelled
		default:
		}

		item := heap.Pop(open).(*pqItem)
		if visited[item.hash] {
			continue
		}
		visited[item.hash] = true
		expanded++

		state := statesByHash[item.hash]
		if len(state.Pieces) == 0 {
			logf("[astar] stop: reached empty state after expanding %d states, %d revisited remainders", expanded, prober.Revisits())
			return reconstructPath(cameFrom, state, item.hash), nil
		}

		current := p.ToState(state)

		moves, err := current.ValidMoves()
		if err != nil {
			return nil, err
		}

		for _, mr := range moves {
			neighborHash := mr.State.Hash()
			tentativeG := gScore[item.hash] + 1
			if g, ok := gScore[neighborHash]; ok && tentativeG >= g {
				continue
			}

			cameFrom[neighborHash] = cameFromEntry{fromHash: item.hash, fromState: state, move: mr.Move}
			gScore[neighborHash] = tentativeG
			fScore[neighborHash] = tentativeG + mr.State.Voxels.InsideCount()
			statesByHash[neighborHash] = mr.State

			revisits := 0
			if len(mr.State.Pieces) <= remainder.MaxPieces {
				// A remainder-probe hit feeds the open-set ordering as a
				// tiebreaker only: it must never substitute for g+h, since
				// that heuristic is deliberately non-admissible and the
				// probe's own count isn't guaranteed consistent with it.
				revisits = prober.Observe(mr.State)
			}

			heap.Push(open, &pqItem{f: fScore[neighborHash], revisits: revisits, seq: seq, hash: neighborHash})
			seq++
		}
	}

	logf("[astar] stop: open set exhausted after expanding %d states, no disassembly found", expanded)
	return nil, ErrNoDisassembly
}

// reconstructPath walks cameFrom backwards from current to the start
// state and returns the path in forward (assembled -> disassembled)
// order.
func reconstructPath(cameFrom map[uint64]cameFromEntry, current puzzle.PuzzleState, currentHash uint64) []Step {
	path := []Step{{State: current, Move: nil}}
	hash := currentHash
	for {
		entry, ok := cameFrom[hash]
		if !ok {
			break
		}
		move := entry.move
		path = append(path, Step{State: entry.fromState, Move: &move})
		hash = entry.fromHash
		current = entry.fromState
	}

	reversed := make([]Step, len(path))
	for i, s := range path {
		reversed[len(path)-1-i] = s
	}
	return reversed
}
