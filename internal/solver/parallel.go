package solver

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hailam/burrsolver/internal/assemblybook"
	"github.com/hailam/burrsolver/internal/puzzle"
)

// SolveParallel is the Lazy-SMP-style counterpart to Solve: it partitions
// the seeded slot-A frontier across a worker pool, each running its own
// branch-and-bound search independently, and returns the first complete
// assembly+disassembly any of them finds. Workers share nothing but a
// stop flag — each has its own frontier heap and remainder prober, mirroring
// the reference engine's per-worker search state with a shared atomic stop
// signal rather than a shared transposition table (a burr assembly search
// has no transposition-table analogue: visited assemblies aren't revisited
// across workers since each worker owns a disjoint slice of slot-A seeds).
func (s *Solver) SolveParallel(ctx context.Context, p *puzzle.Puzzle, shapeTexts []string, limits Limits) (*Solution, error) {
	key := assemblybook.Key(shapeTexts)

	if cached, cachedErr, ok, err := s.lookupCache(key, p); err != nil {
		s.logf("[solver] cache lookup error: %v", err)
	} else if ok {
		if cachedErr != nil {
			return nil, cachedErr
		}
		return cached, nil
	}

	var hint *puzzle.Piece
	if entry, ok := s.Book.Probe(key); ok {
		for _, seat := range p.PiecesAt(entry.ShapeID, "A") {
			if seat.Piece.Orientation == entry.Orientation {
				h := seat.Piece
				hint = &h
				break
			}
		}
	}

	seeds := seedFrontier(p, hint)
	workers := limits.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}
	if workers < 1 {
		workers = 1
	}

	buckets := make([][]*frontierEntry, workers)
	for i, seed := range seeds {
		w := i % workers
		buckets[w] = append(buckets[w], seed)
	}

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	var stop atomic.Bool
	var wg sync.WaitGroup
	var once sync.Once
	var winner *Solution
	var winnerErr error

	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		wg.Add(1)
		go func(id int, seeds []*frontierEntry) {
			defer wg.Done()
			s.logf("[solver] worker %d: start, %d seeds", id, len(seeds))
			sol, err := s.searchFrontier(workerCtx, p, limits, seeds, &stop)
			if err == nil {
				stop.Store(true)
				once.Do(func() {
					winner = sol
					winnerErr = nil
					cancelWorkers()
				})
				s.logf("[solver] worker %d: stop, found the winning assembly", id)
				return
			}
			s.logf("[solver] worker %d: stop, %v", id, err)
		}(i, bucket)
	}
	wg.Wait()

	if winner != nil {
		s.recordBookAndCache(key, winner)
		return winner, nil
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}
	if !limits.Deadline.IsZero() && time.Now().After(limits.Deadline) {
		return nil, ErrCancelled
	}
	if winnerErr == nil {
		winnerErr = ErrNoAssembly
	}
	if errCacheable(winnerErr) && limits.MaxCandidates == 0 {
		s.storeCacheMiss(key)
	}
	return nil, winnerErr
}
