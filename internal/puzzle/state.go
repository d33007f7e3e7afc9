package puzzle

import (
	"sort"
	"strings"

	"github.com/hailam/burrsolver/internal/lattice"
)

// PuzzleState is an immutable snapshot of which pieces are placed where,
// plus the voxels they currently occupy.
type PuzzleState struct {
	Pieces []Piece
	Voxels lattice.VoxelSet
}

// Add returns a new state with piece appended and its voxels merged in.
func (s PuzzleState) Add(piece Piece, voxels lattice.VoxelSet) PuzzleState {
	pieces := make([]Piece, len(s.Pieces), len(s.Pieces)+1)
	copy(pieces, s.Pieces)
	pieces = append(pieces, piece)
	return PuzzleState{pieces, s.Voxels.Union(voxels)}
}

// pieceMixSeed is the same fixed xorshift64* seed the teacher's Zobrist
// table is built from (internal/board/zobrist.go), reused here as the
// starting state for a functional per-piece hash. A precomputed key table
// isn't a fit: chess has 64 squares, a burr piece's seat position is an
// open-ended integer coordinate, so each piece's key is derived instead of
// looked up.
const pieceMixSeed = 0x98F107A2BEEF1234

// xorshift64* multiplier, same constant the teacher's xorshift64* uses.
const mixMultiplier = 0x2545F4914F6CDD1D

func mix(h, v uint64) uint64 {
	h ^= v
	h *= mixMultiplier
	h ^= h >> 33
	return h
}

// pieceKey derives a pseudo-random 64-bit key for a piece, stable across
// calls and independent of the order pieces are placed in.
func pieceKey(p Piece) uint64 {
	h := uint64(pieceMixSeed)
	h = mix(h, uint64(uint32(p.ShapeID)))
	h = mix(h, uint64(uint32(p.Position.X)))
	h = mix(h, uint64(uint32(p.Position.Y)))
	h = mix(h, uint64(uint32(p.Position.Z)))
	h = mix(h, uint64(uint32(p.Position.Axis)))
	h = mix(h, uint64(uint32(p.Orientation)))
	return h
}

// Hash returns a canonical identity for this state: the XOR of every
// placed piece's key. XOR is commutative, so two states with the same
// pieces placed in different insertion orders hash identically — this is
// the property the reference implementation's order-sensitive tuple key
// lacked (see the design note on canonicalization).
func (s PuzzleState) Hash() uint64 {
	var h uint64
	for _, p := range s.Pieces {
		h ^= pieceKey(p)
	}
	return h
}

// SameAssignment reports whether s and other place the same set of
// pieces, ignoring order. Used to verify a hash match isn't a collision.
func (s PuzzleState) SameAssignment(other PuzzleState) bool {
	if len(s.Pieces) != len(other.Pieces) {
		return false
	}
	counts := make(map[Piece]int, len(s.Pieces))
	for _, p := range s.Pieces {
		counts[p]++
	}
	for _, p := range other.Pieces {
		counts[p]--
		if counts[p] < 0 {
			return false
		}
	}
	return true
}

// String renders the state as space-separated piece notations in
// ascending shape-index order, giving deterministic output regardless of
// the internal placement order.
func (s PuzzleState) String() string {
	pieces := make([]Piece, len(s.Pieces))
	copy(pieces, s.Pieces)
	sort.Slice(pieces, func(i, j int) bool { return pieces[i].ShapeID < pieces[j].ShapeID })

	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
