package solver

import (
	"container/heap"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/hailam/burrsolver/internal/assemblybook"
	"github.com/hailam/burrsolver/internal/lattice"
	"github.com/hailam/burrsolver/internal/puzzle"
	"github.com/hailam/burrsolver/internal/remainder"
	"github.com/hailam/burrsolver/internal/solvercache"
)

// Solver finds assemblies and disassemblies for a Puzzle. Its optional
// collaborators (Book, Cache) are nil-safe: an unconfigured Solver
// behaves exactly like the reference implementation's from-scratch
// search.
type Solver struct {
	Book   *assemblybook.Book
	Cache  *solvercache.Cache
	Logger *log.Logger
}

// New returns a Solver with no book or cache configured.
func New() *Solver {
	return &Solver{Logger: log.Default()}
}

func (s *Solver) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

// Solve finds an assembly of p's six shapes and a disassembly of that
// assembly. It first checks the solve cache (if configured), then probes
// the assembly book for a seating hint, then runs the branch-and-bound
// assembly search, attempting an A* disassembly for every complete
// assembly it reaches until one succeeds.
func (s *Solver) Solve(ctx context.Context, p *puzzle.Puzzle, shapeTexts []string, limits Limits) (*Solution, error) {
	key := assemblybook.Key(shapeTexts)

	if cached, cachedErr, ok, err := s.lookupCache(key, p); err != nil {
		s.logf("[solver] cache lookup error: %v", err)
	} else if ok {
		if cachedErr != nil {
			s.logf("[solver] cache hit for puzzle key %x: %v", key, cachedErr)
			return nil, cachedErr
		}
		s.logf("[solver] cache hit for puzzle key %x", key)
		return cached, nil
	}

	var hint *puzzle.Piece
	if entry, ok := s.Book.Probe(key); ok {
		seats := p.PiecesAt(entry.ShapeID, "A")
		for _, seat := range seats {
			if seat.Piece.Orientation == entry.Orientation {
				h := seat.Piece
				hint = &h
				break
			}
		}
		if hint != nil {
			s.logf("[solver] assembly book hint: shape %d orientation %d", entry.ShapeID, entry.Orientation)
		}
	}

	sol, err := s.search(ctx, p, limits, hint)
	if err != nil {
		if errCacheable(err) && limits.MaxCandidates == 0 {
			s.storeCacheMiss(key)
		}
		return nil, err
	}

	s.recordBookAndCache(key, sol)
	return sol, nil
}

func errCacheable(err error) bool {
	return errors.Is(err, ErrNoAssembly)
}

// search runs the assembly branch-and-bound search, trying an A*
// disassembly against every complete candidate it produces, exactly as
// the reference solver does: it does not stop at the first valid
// assembly, only at the first one that also disassembles.
func (s *Solver) search(ctx context.Context, p *puzzle.Puzzle, limits Limits, hint *puzzle.Piece) (*Solution, error) {
	return s.searchFrontier(ctx, p, limits, seedFrontier(p, hint), nil)
}

// searchFrontier runs the branch-and-bound search starting from a given
// set of seed entries, the shared engine a single-threaded Solve and each
// SolveParallel worker both run. When stop is non-nil, every iteration
// also checks it: another worker having already found a solution aborts
// this one's search early, the same way the reference engine's Lazy-SMP
// workers watch a shared stop flag.
func (s *Solver) searchFrontier(ctx context.Context, p *puzzle.Puzzle, limits Limits, seeds []*frontierEntry, stop *atomic.Bool) (*Solution, error) {
	frontier := &frontierHeap{}
	for _, e := range seeds {
		heap.Push(frontier, e)
	}

	seq := frontier.Len()
	prober := remainder.New()
	candidatesTried := 0

	for frontier.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}
		if stop != nil && stop.Load() {
			return nil, ErrCancelled
		}
		if limits.exceeded(candidatesTried, time.Now) {
			if !limits.Deadline.IsZero() && time.Now().After(limits.Deadline) {
				return nil, ErrCancelled
			}
			return nil, ErrNoAssembly
		}

		entry := heap.Pop(frontier).(*frontierEntry)

		if len(entry.remainingShapes) == 0 {
			candidatesTried++
			candidate := p.ToState(entry.state)
			path, err := disassemble(ctx, candidate, prober, s.logf)
			if err == nil {
				return &Solution{Assembly: entry.state, Path: path, CandidatesTried: candidatesTried}, nil
			}
			if err == ErrCancelled {
				return nil, err
			}
			continue
		}

		for _, shapeID := range entry.remainingShapes {
			for _, slot := range entry.remainingSlots {
				for _, seat := range p.PiecesAt(shapeID, slot) {
					if !entry.state.Voxels.IsDisjoint(seat.Voxels) {
						continue
					}
					newState := entry.state.Add(seat.Piece, seat.Voxels)
					newEntry := &frontierEntry{
						remainingCount:  len(entry.remainingShapes) - 1,
						seq:             seq,
						state:           newState,
						remainingShapes: without(entry.remainingShapes, shapeID),
						remainingSlots:  withoutSlot(entry.remainingSlots, slot),
					}
					seq++
					heap.Push(frontier, newEntry)
				}
			}
		}
	}

	return nil, ErrNoAssembly
}

// cacheRecord is the JSON payload stored in solvercache. A cacheStep's
// Direction/Steps/ShapeIDs describe the move taken FROM that step's state
// to reach the next step, mirroring Step's own convention; the final step
// carries no move. Piece positions are stored as explicit coordinates
// rather than via Piece.String()'s slot notation, since a disassembly path
// moves pieces away from their named slots and that notation has no
// inverse for an arbitrary position.
type cacheRecord struct {
	Solved bool        `json:"solved"`
	Path   []cacheStep `json:"path,omitempty"`
}

type cachePiece struct {
	ShapeID     int `json:"shape_id"`
	X           int `json:"x"`
	Y           int `json:"y"`
	Z           int `json:"z"`
	Axis        int `json:"axis"`
	Orientation int `json:"orientation"`
}

type cacheStep struct {
	Pieces    []cachePiece `json:"pieces"`
	ShapeIDs  []int        `json:"shape_ids,omitempty"`
	Direction int          `json:"direction,omitempty"`
	Steps     int          `json:"steps,omitempty"`
}

func encodePiece(p puzzle.Piece) cachePiece {
	return cachePiece{
		ShapeID:     p.ShapeID,
		X:           p.Position.X,
		Y:           p.Position.Y,
		Z:           p.Position.Z,
		Axis:        int(p.Position.Axis),
		Orientation: p.Orientation,
	}
}

func decodePiece(cp cachePiece) puzzle.Piece {
	return puzzle.Piece{
		ShapeID:     cp.ShapeID,
		Position:    lattice.Position{X: cp.X, Y: cp.Y, Z: cp.Z, Axis: lattice.Axis(cp.Axis)},
		Orientation: cp.Orientation,
	}
}

// decodeState rebuilds a PuzzleState from its cached pieces using p's
// shape catalog to recompute each piece's occupied voxels.
func decodeState(p *puzzle.Puzzle, pieces []cachePiece) (puzzle.PuzzleState, error) {
	state := puzzle.PuzzleState{}
	for _, cp := range pieces {
		piece := decodePiece(cp)
		voxels, err := p.VoxelsFor(piece)
		if err != nil {
			return puzzle.PuzzleState{}, fmt.Errorf("solver: decoding cached piece %+v: %w", cp, err)
		}
		state = state.Add(piece, voxels)
	}
	return state, nil
}

// lookupCache reports a cached outcome for key, if any. A hit with
// cachedErr set means the puzzle was previously proven unsolvable
// (callers should return cachedErr directly, skipping the search); a hit
// with a non-nil Solution is a fully reconstructed prior solve.
func (s *Solver) lookupCache(key uint64, p *puzzle.Puzzle) (sol *Solution, cachedErr error, ok bool, err error) {
	if s.Cache == nil {
		return nil, nil, false, nil
	}
	raw, found, err := s.Cache.Get(key)
	if err != nil || !found {
		return nil, nil, false, err
	}

	var rec cacheRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil, false, err
	}
	if !rec.Solved {
		return nil, ErrNoAssembly, true, nil
	}
	if len(rec.Path) == 0 {
		return nil, nil, false, nil
	}

	path := make([]Step, len(rec.Path))
	for i, cs := range rec.Path {
		state, err := decodeState(p, cs.Pieces)
		if err != nil {
			return nil, nil, false, fmt.Errorf("solver: decoding cached step %d: %w", i, err)
		}
		path[i] = Step{State: state}
	}
	for i := range path[:len(path)-1] {
		cs := rec.Path[i]
		pieces := make(map[puzzle.Piece]struct{}, len(cs.ShapeIDs))
		for _, id := range cs.ShapeIDs {
			for _, piece := range path[i].State.Pieces {
				if piece.ShapeID == id {
					pieces[piece] = struct{}{}
					break
				}
			}
		}
		move := puzzle.Move{Pieces: pieces, Direction: lattice.Direction(cs.Direction), Steps: cs.Steps}
		path[i].Move = &move
	}

	return &Solution{Assembly: path[0].State, Path: path, CandidatesTried: 0}, nil, true, nil
}

func (s *Solver) storeCacheMiss(key uint64) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(cacheRecord{Solved: false})
	if err != nil {
		return
	}
	if err := s.Cache.Put(key, raw); err != nil {
		s.logf("[solver] cache store error: %v", err)
	}
}

func (s *Solver) recordBookAndCache(key uint64, sol *Solution) {
	if len(sol.Assembly.Pieces) > 0 {
		seat := sol.Assembly.Pieces[0]
		weight := uint32(1)
		if sol.CandidatesTried <= 1 {
			weight = 4
		}
		s.Book.Record(key, seat.ShapeID, seat.Orientation, weight)
	}

	if s.Cache == nil {
		return
	}
	rec := cacheRecord{Solved: true}
	for _, step := range sol.Path {
		cs := cacheStep{}
		for _, piece := range step.State.Pieces {
			cs.Pieces = append(cs.Pieces, encodePiece(piece))
		}
		if step.Move != nil {
			cs.Direction = int(step.Move.Direction)
			cs.Steps = step.Move.Steps
			for piece := range step.Move.Pieces {
				cs.ShapeIDs = append(cs.ShapeIDs, piece.ShapeID)
			}
		}
		rec.Path = append(rec.Path, cs)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		s.logf("[solver] cache encode error: %v", err)
		return
	}
	if err := s.Cache.Put(key, raw); err != nil {
		s.logf("[solver] cache store error: %v", err)
	}
}
