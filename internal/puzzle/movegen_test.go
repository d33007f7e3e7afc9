package puzzle

import (
	"testing"

	"github.com/hailam/burrsolver/internal/lattice"
)

func TestCombinationsSmall(t *testing.T) {
	got := combinations(4, 2)
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %d combinations, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Fatalf("combo %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCombinationsEdgeCases(t *testing.T) {
	if got := combinations(3, 0); got != nil {
		t.Fatalf("size 0 should yield nil, got %v", got)
	}
	if got := combinations(3, 4); got != nil {
		t.Fatalf("size > n should yield nil, got %v", got)
	}
	got := combinations(3, 3)
	if len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("combinations(3,3) = %v, want one 3-element combo", got)
	}
}

// solidShapeText is a fully-solid 2x2x6 box: every cell present.
const solidShapeText = "xxxxxx/xxxxxx/xxxxxx/xxxxxx"

func puzzleOfSolids(t *testing.T, n int) *Puzzle {
	t.Helper()
	lines := make([]string, n)
	for i := range lines {
		lines[i] = solidShapeText
	}
	p, err := FromText(lines)
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	return p
}

func TestValidMovesSinglePieceCanMove(t *testing.T) {
	p := puzzleOfSolids(t, 6)
	seat := p.PiecesAt(0, "A")
	if len(seat) == 0 {
		t.Fatal("expected at least one legal seat for a solid shape at slot A")
	}
	placed := seat[0]
	p = p.ToState(PuzzleState{}.Add(placed.Piece, placed.Voxels))

	moves, err := p.ValidMoves()
	if err != nil {
		t.Fatalf("ValidMoves: %v", err)
	}
	if len(moves) == 0 {
		t.Fatal("a lone piece in an otherwise empty puzzle should always be able to move")
	}
	for _, mr := range moves {
		if mr.Move.Steps < 1 {
			t.Fatalf("move has non-positive steps: %+v", mr.Move)
		}
	}
}

func TestMoveRemovesPieceWhenFullyOutside(t *testing.T) {
	p := puzzleOfSolids(t, 6)
	seat := p.PiecesAt(0, "A")[0]
	p = p.ToState(PuzzleState{}.Add(seat.Piece, seat.Voxels))

	moves, err := p.ValidMoves()
	if err != nil {
		t.Fatalf("ValidMoves: %v", err)
	}

	foundRemoval := false
	for _, mr := range moves {
		if len(mr.State.Pieces) == 0 {
			foundRemoval = true
		}
	}
	if !foundRemoval {
		t.Fatal("expected at least one move that removes the sole piece entirely")
	}
}

// pieceAt builds a single-voxel piece (shape text "x") sitting at the aligned
// grid cell (gx, gy, gz), bypassing PiecesAt's slot-legality filter the way
// a piece mid-disassembly does: AlignedAt only does the rotate/translate
// arithmetic, it never re-checks the required-voxel table PiecesAt does.
func pieceAt(shapeID, gx, gy, gz int) Piece {
	return Piece{
		ShapeID:     shapeID,
		Position:    lattice.Position{X: gx + 1, Y: gy + 1, Z: gz - 2, Axis: lattice.AxisZ},
		Orientation: 0,
	}
}

// TestValidMovesEmitsInterlockedMultiPieceMove builds a synthetic fixture
// where a single voxel (A) sits boxed in on five of its six faces by
// one-voxel blocker pieces, with the sixth face occupied by a second voxel
// (B) directly ahead of it along +Z. Neither A nor B alone can vacate A's
// cell — A is walled in everywhere, and B sits exactly where A would need to
// slide into — but translated together as a rigid pair they share no
// collision with anything outside the pair and can escape along Z, the one
// axis that isn't boxed in. This exercises the size>1 combinations() branch
// in ValidMoves with a move that actually gets emitted.
func TestValidMovesEmitsInterlockedMultiPieceMove(t *testing.T) {
	lines := make([]string, 7)
	for i := range lines {
		lines[i] = "x"
	}
	p, err := FromText(lines)
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}

	a := pieceAt(0, 0, 0, 0)
	b := pieceAt(1, 0, 0, 1) // directly ahead of A along +Z
	blockers := []Piece{
		pieceAt(2, -1, 0, 0), // boxes A's -X
		pieceAt(3, 1, 0, 0),  // boxes A's +X
		pieceAt(4, 0, -1, 0), // boxes A's -Y
		pieceAt(5, 0, 1, 0),  // boxes A's +Y
		pieceAt(6, 0, 0, -1), // boxes A's -Z
	}

	state := PuzzleState{}
	for _, piece := range append([]Piece{a, b}, blockers...) {
		voxels, err := p.VoxelsFor(piece)
		if err != nil {
			t.Fatalf("VoxelsFor(%+v): %v", piece, err)
		}
		state = state.Add(piece, voxels)
	}
	p = p.ToState(state)

	moves, err := p.ValidMoves()
	if err != nil {
		t.Fatalf("ValidMoves: %v", err)
	}

	var pairMove *MoveResult
	for i := range moves {
		mr := &moves[i]
		if len(mr.Move.Pieces) != 2 {
			continue
		}
		_, hasA := mr.Move.Pieces[a]
		_, hasB := mr.Move.Pieces[b]
		if hasA && hasB {
			pairMove = mr
			break
		}
	}
	if pairMove == nil {
		t.Fatal("expected a 2-piece move sliding the interlocked pair together")
	}
	if pairMove.Move.Direction != lattice.Forward {
		t.Fatalf("expected the pair to escape via forward (+Z), got %v", pairMove.Move.Direction)
	}

	for _, mr := range moves {
		if len(mr.Move.Pieces) != 1 {
			continue
		}
		if _, ok := mr.Move.Pieces[a]; ok {
			t.Fatalf("piece A is boxed in on every face and should have no single-piece move, got %+v", mr.Move)
		}
	}

	total := 0
	for _, piece := range pairMove.State.Pieces {
		voxels, err := p.VoxelsFor(piece)
		if err != nil {
			t.Fatalf("VoxelsFor(%+v): %v", piece, err)
		}
		total += len(voxels)
	}
	if total != len(pairMove.State.Voxels) {
		t.Fatalf("resulting state's pieces overlap: %d piece voxels but only %d distinct voxels", total, len(pairMove.State.Voxels))
	}
}
