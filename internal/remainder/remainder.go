// Package remainder implements a small-endgame-style fast path for the
// disassembly A*, modeled on a tablebase Prober: once few enough pieces
// remain placed, the state space still to search is small enough that
// repeat visits across a solve are worth remembering.
//
// Unlike a chess tablebase, a remainder probe's recorded visit count is
// never substituted for the A*'s own g+h — that heuristic is deliberately
// non-admissible (see internal/solver), and the probe's count carries no
// distance guarantee consistent with it. Instead the A* open set uses
// Observe's return value purely as a tiebreaker: among states tied on
// f-score, the one the prober has seen fewer times is explored first.
package remainder

import "github.com/hailam/burrsolver/internal/puzzle"

// MaxPieces is the largest placed-piece count this package considers
// worth tracking. Above this, the subproblem is as large as the main
// search and tracking it separately has no benefit.
const MaxPieces = 3

// Prober records how many times each small-remainder state (identified
// by its canonical hash) has been visited during a single solve.
type Prober struct {
	visits map[uint64]int
}

// New returns an empty, per-solve Prober. A Prober must never be shared
// or reused across separate Solve calls: its bookkeeping is only valid
// for the puzzle instance it was built for.
func New() *Prober {
	return &Prober{visits: make(map[uint64]int)}
}

// Observe records a visit to state and returns how many times
// (including this one) it has now been seen.
func (p *Prober) Observe(state puzzle.PuzzleState) int {
	if p == nil {
		return 0
	}
	h := state.Hash()
	p.visits[h]++
	return p.visits[h]
}

// Revisits returns the number of distinct small-remainder states that
// have been observed more than once so far.
func (p *Prober) Revisits() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, count := range p.visits {
		if count > 1 {
			n++
		}
	}
	return n
}
