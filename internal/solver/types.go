// Package solver finds an assembly of a six-shape burr puzzle into the
// cross frame and a low-move-count (not guaranteed shortest) disassembly
// of that assembly, following the
// same two-phase search as the reference implementation: a branch-and-
// bound assembly search over slot assignments, and an A* search over
// multi-piece translations for disassembly.
package solver

import (
	"errors"
	"time"

	"github.com/hailam/burrsolver/internal/puzzle"
)

// Sentinel errors, checkable with errors.Is.
var (
	ErrNoAssembly    = errors.New("solver: no assembly found")
	ErrNoDisassembly = errors.New("solver: no disassembly found")
	ErrCancelled     = errors.New("solver: cancelled")
)

// Limits bounds a Solve call. The zero value means "no limit" for every
// field.
type Limits struct {
	// MaxCandidates caps how many complete assemblies are attempted
	// before giving up with ErrNoAssembly. Zero means unbounded.
	MaxCandidates int
	// Deadline, if non-zero, stops the search (returning ErrCancelled)
	// once reached.
	Deadline time.Time
	// Workers is the goroutine count for SolveParallel. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
}

func (l Limits) exceeded(candidatesChecked int, now func() time.Time) bool {
	if l.MaxCandidates > 0 && candidatesChecked >= l.MaxCandidates {
		return true
	}
	if !l.Deadline.IsZero() && now().After(l.Deadline) {
		return true
	}
	return false
}

// Step is one state in a disassembly path, together with the move taken
// from that state to reach the next step (nil for the final, empty state).
// No step records the move that led into it; the first step is the
// fully-assembled state and carries the first move.
type Step struct {
	State puzzle.PuzzleState
	Move  *puzzle.Move
}

// Solution is a found assembly plus the disassembly path that empties it.
type Solution struct {
	Assembly         puzzle.PuzzleState
	Path             []Step
	CandidatesTried  int
}
