package solver

import (
	"context"
	"testing"
	"time"

	"github.com/hailam/burrsolver/internal/assemblybook"
	"github.com/hailam/burrsolver/internal/puzzle"
	"github.com/hailam/burrsolver/internal/solvercache"
)

// endRingShapeText holds only the eight end cells of one long face of the
// 2x2x6 box, which some orientation maps onto the eight required voxels of
// every slot. Six of these assemble without overlap (six solid boxes would
// not: their seats intersect), giving a hand-verifiable fixture without
// needing a real burr-puzzle catalog's shape text.
const endRingShapeText = "xx..xx/xx..xx/....../......"

func solidPuzzle(t *testing.T, n int) (*puzzle.Puzzle, []string) {
	t.Helper()
	texts := make([]string, n)
	for i := range texts {
		texts[i] = endRingShapeText
	}
	p, err := puzzle.FromText(texts)
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	return p, texts
}

func TestSolveFindsAssemblyAndDisassembly(t *testing.T) {
	p, texts := solidPuzzle(t, 6)
	s := New()
	s.Logger = nil

	sol, err := s.Solve(context.Background(), p, texts, Limits{MaxCandidates: 500})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sol.Assembly.Pieces) != 6 {
		t.Fatalf("assembly has %d pieces, want 6", len(sol.Assembly.Pieces))
	}
	if len(sol.Path) == 0 {
		t.Fatal("expected a non-empty disassembly path")
	}
	last := sol.Path[len(sol.Path)-1]
	if len(last.State.Pieces) != 0 {
		t.Fatalf("disassembly path doesn't end empty: %d pieces remain", len(last.State.Pieces))
	}
	if sol.Path[0].State.Hash() != sol.Assembly.Hash() {
		t.Fatalf("disassembly path doesn't start at the found assembly")
	}
}

func TestSolveIsDeterministicAcrossRuns(t *testing.T) {
	p1, texts := solidPuzzle(t, 6)
	p2, _ := solidPuzzle(t, 6)

	s1 := New()
	s1.Logger = nil
	s2 := New()
	s2.Logger = nil

	sol1, err := s1.Solve(context.Background(), p1, texts, Limits{MaxCandidates: 500})
	if err != nil {
		t.Fatalf("first Solve: %v", err)
	}
	sol2, err := s2.Solve(context.Background(), p2, texts, Limits{MaxCandidates: 500})
	if err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	if sol1.Assembly.Hash() != sol2.Assembly.Hash() {
		t.Fatalf("two from-scratch solves picked different assemblies: %s vs %s",
			sol1.Assembly.String(), sol2.Assembly.String())
	}
}

func TestSeedFrontierCullsFlippedSlotASeatings(t *testing.T) {
	p, _ := solidPuzzle(t, 6)
	entries := seedFrontier(p, nil)
	if len(entries) == 0 {
		t.Fatal("expected at least one seeded frontier entry")
	}
	for _, e := range entries {
		if len(e.state.Pieces) != 1 {
			t.Fatalf("seeded entry should have exactly one placed piece, got %d", len(e.state.Pieces))
		}
		if e.state.Pieces[0].IsFlipped() {
			t.Fatalf("seeded slot-A piece %s is flipped, expected flipped seatings to be culled", e.state.Pieces[0])
		}
	}
}

func TestBookHintIsTriedFirst(t *testing.T) {
	p, texts := solidPuzzle(t, 6)
	s := New()
	s.Logger = nil

	first, err := s.Solve(context.Background(), p, texts, Limits{MaxCandidates: 500})
	if err != nil {
		t.Fatalf("first Solve: %v", err)
	}

	p2, _ := solidPuzzle(t, 6)
	s2 := New()
	s2.Logger = nil
	s2.Book = assemblybook.New()
	key := assemblybook.Key(texts)
	winner := first.Assembly.Pieces[0]
	s2.Book.Record(key, winner.ShapeID, winner.Orientation, 10)

	second, err := s2.Solve(context.Background(), p2, texts, Limits{MaxCandidates: 500})
	if err != nil {
		t.Fatalf("hinted Solve: %v", err)
	}
	if second.CandidatesTried > first.CandidatesTried {
		t.Fatalf("hinted solve tried %d candidates, more than the unhinted solve's %d",
			second.CandidatesTried, first.CandidatesTried)
	}
}

func TestSolveRespectsDeadline(t *testing.T) {
	p, texts := solidPuzzle(t, 6)
	s := New()
	s.Logger = nil

	_, err := s.Solve(context.Background(), p, texts, Limits{Deadline: time.Now().Add(-time.Second)})
	if err == nil {
		t.Fatal("expected an already-past deadline to fail the solve")
	}
}

func TestSolveReusesCachedResult(t *testing.T) {
	cache, err := solvercache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	defer cache.Close()

	p1, texts := solidPuzzle(t, 6)
	s1 := New()
	s1.Logger = nil
	s1.Cache = cache

	first, err := s1.Solve(context.Background(), p1, texts, Limits{MaxCandidates: 500})
	if err != nil {
		t.Fatalf("first Solve: %v", err)
	}

	p2, _ := solidPuzzle(t, 6)
	s2 := New()
	s2.Logger = nil
	s2.Cache = cache

	second, err := s2.Solve(context.Background(), p2, texts, Limits{MaxCandidates: 0})
	if err != nil {
		t.Fatalf("cached Solve: %v", err)
	}
	if second.CandidatesTried != 0 {
		t.Fatalf("expected a cache hit to skip the search entirely, but CandidatesTried = %d", second.CandidatesTried)
	}
	if second.Assembly.Hash() != first.Assembly.Hash() {
		t.Fatalf("cached assembly %s differs from original %s", second.Assembly.String(), first.Assembly.String())
	}
	if len(second.Path) != len(first.Path) {
		t.Fatalf("cached path has %d steps, want %d", len(second.Path), len(first.Path))
	}
	for i := range first.Path {
		if second.Path[i].State.Hash() != first.Path[i].State.Hash() {
			t.Fatalf("cached path step %d differs from original", i)
		}
	}
}

func TestSolveCancellation(t *testing.T) {
	p, texts := solidPuzzle(t, 6)
	s := New()
	s.Logger = nil

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Solve(ctx, p, texts, Limits{})
	if err != ErrCancelled {
		t.Fatalf("Solve with a cancelled context returned %v, want ErrCancelled", err)
	}
}
