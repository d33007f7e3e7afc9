// Package assemblybook is a hint table of previously-successful slot-A
// seatings, modeled on a Polyglot opening book: a hash of the puzzle's
// shape texts maps to a weighted list of candidate seatings, consulted
// before the assembly search runs so a puzzle solved before can skip
// straight back to the seating that worked.
//
// Unlike a chess opening book, this is never loaded from an external
// file — it is built up in-process purely from this program's own solved
// puzzles, and it is not persisted between processes.
package assemblybook

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Entry is one previously-successful slot-A seating.
type Entry struct {
	ShapeID     int
	Orientation int
	Weight      uint32
}

// Book is a concurrency-safe hash -> weighted candidate list.
type Book struct {
	mu      sync.RWMutex
	entries map[uint64][]Entry
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// Key hashes a puzzle's shape texts (in catalog order, since order is a
// solver input that changes which shape index ends up at slot A) into the
// lookup key Probe/Record use.
func Key(shapeTexts []string) uint64 {
	h := xxhash.New()
	for _, t := range shapeTexts {
		h.Write([]byte(t))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Probe returns the best-weighted known seating for key, if any. Ties and
// weighting order are resolved deterministically (highest weight first,
// then lowest shape ID) rather than by weighted random choice — a solver
// re-run against the same puzzle should retry the same seating first
// every time.
func (b *Book) Probe(key uint64) (Entry, bool) {
	if b == nil {
		return Entry{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := b.entries[key]
	if len(entries) == 0 {
		return Entry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Weight > best.Weight || (e.Weight == best.Weight && e.ShapeID < best.ShapeID) {
			best = e
		}
	}
	return best, true
}

// Record credits a seating with weightDelta, creating the entry if it
// doesn't already exist.
func (b *Book) Record(key uint64, shapeID, orientation int, weightDelta uint32) {
	if b == nil || weightDelta == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.entries[key] {
		if e.ShapeID == shapeID && e.Orientation == orientation {
			b.entries[key][i].Weight += weightDelta
			return
		}
	}
	b.entries[key] = append(b.entries[key], Entry{shapeID, orientation, weightDelta})
}

// Size returns the number of distinct puzzle keys in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// All returns every entry for key sorted by descending weight, for
// diagnostics.
func (b *Book) All(key uint64) []Entry {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := append([]Entry(nil), b.entries[key]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}
