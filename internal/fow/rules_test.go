package fow

import (
	"strings"
	"testing"
)

// boardFromRows builds a board from eight 8-rune strings, row 0 (rank 8)
// first, '.' for empty. Symbols follow Piece.Symbol.
func boardFromRows(t *testing.T, rows ...string) *Board {
	t.Helper()
	if len(rows) != BoardSize {
		t.Fatalf("boardFromRows: want %d rows, got %d", BoardSize, len(rows))
	}
	g, err := RestoreGame(Snapshot{
		Board:   strings.Join(rows, "/"),
		Turn:    White,
		Outcome: OutcomeInProgress,
	})
	if err != nil {
		t.Fatalf("boardFromRows: %v", err)
	}
	return g.board
}

// alg converts "e2" style references so test cases stay readable.
func alg(t *testing.T, s string) Square {
	t.Helper()
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		t.Fatalf("bad test square %q", s)
	}
	return Square{Row: int('8' - s[1]), Col: int(s[0] - 'a')}
}

const emptyRow = "........"

func TestPawnMoves(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		"p.p.pP..", // black pawns a7 c7 e7, white pawn f7
		".P......", // white pawn b6
		emptyRow,
		"....n...", // black knight e4
		"..p.P...", // black pawn c3, white pawn e3
		"PP..P...", // white pawns a2 b2, plus e2 behind e3
		emptyRow,
	)

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"single step forward", "a2", "a3", true},
		{"double step from start", "a2", "a4", true},
		{"double step blocked", "e2", "e4", false},
		{"double step from wrong rank", "e3", "e5", false},
		{"single step blocked", "e2", "e3", false},
		{"capture diagonally", "b2", "c3", true},
		{"diagonal onto empty square", "a2", "b3", false},
		{"sideways", "b2", "c2", false},
		{"backward", "b2", "b1", false},
		{"capture straight ahead", "e3", "e4", false},
		{"capture toward the enemy home rank", "b6", "a7", true},
		{"capture toward the enemy home rank other side", "b6", "c7", true},
		{"diagonal onto empty back-rank square", "f7", "g8", false},
		{"forward onto the last rank, no promotion", "f7", "f8", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LegalMove(board, alg(t, tt.from), alg(t, tt.to)); got != tt.want {
				t.Fatalf("LegalMove(%s->%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBlackPawnDirection(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		"...p....", // black pawn d7
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
	)
	if !LegalMove(board, alg(t, "d7"), alg(t, "d6")) {
		t.Fatal("black pawn should advance toward rank 1")
	}
	if !LegalMove(board, alg(t, "d7"), alg(t, "d5")) {
		t.Fatal("black pawn double step from its starting rank should be legal")
	}
	if LegalMove(board, alg(t, "d7"), alg(t, "d8")) {
		t.Fatal("black pawn must not move toward rank 8")
	}
}

func TestPawnDiagonalCaptureRequiresEnemy(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		"..p.P...", // black pawn c4, white pawn e4
		"...P....", // white pawn d3
		emptyRow,
		emptyRow,
	)
	if !LegalMove(board, alg(t, "d3"), alg(t, "c4")) {
		t.Fatal("diagonal capture of enemy pawn should be legal")
	}
	if LegalMove(board, alg(t, "d3"), alg(t, "e4")) {
		t.Fatal("diagonal move onto own piece must be illegal")
	}
	// d4 and d5 are both empty; the double step is still refused off the
	// starting rank.
	if LegalMove(board, alg(t, "d3"), alg(t, "d5")) {
		t.Fatal("double step from a non-starting rank must be illegal even with clear squares")
	}
}

func TestRookMoves(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		emptyRow,
		emptyRow,
		"...p....", // black pawn d5
		emptyRow,
		emptyRow,
		"...P....", // white pawn d2
		"R..R....", // white rooks a1 d1
	)

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"horizontal clear", "a1", "c1", true},
		{"horizontal onto own rook", "a1", "d1", false},
		{"horizontal through own rook", "a1", "h1", false},
		{"vertical clear", "a1", "a8", true},
		{"vertical blocked by own pawn", "d1", "d5", false},
		{"zero length", "d1", "d1", false},
		{"diagonal", "a1", "b2", false},
		{"knight shape", "a1", "b3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LegalMove(board, alg(t, tt.from), alg(t, tt.to)); got != tt.want {
				t.Fatalf("LegalMove(%s->%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSlidersBlockedByEitherColor(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		"...p....", // black pawn d4 on the bishop diagonal a1-h8? (d4 is on it)
		emptyRow,
		emptyRow,
		"B..Q...R", // white bishop a1, queen d1, rook h1
	)
	// Bishop a1-h8 runs through d4; the black pawn blocks travel past it
	// but is itself capturable.
	if !LegalMove(board, alg(t, "a1"), alg(t, "d4")) {
		t.Fatal("bishop capture of the blocking pawn should be legal")
	}
	if LegalMove(board, alg(t, "a1"), alg(t, "e5")) {
		t.Fatal("bishop must not slide through an enemy blocker")
	}
	// Queen d1-d8 runs through d4 as well.
	if LegalMove(board, alg(t, "d1"), alg(t, "d8")) {
		t.Fatal("queen must not slide through an enemy blocker")
	}
	// Rook h1-a1 runs through d1, occupied by the friendly queen.
	if LegalMove(board, alg(t, "h1"), alg(t, "a1")) {
		t.Fatal("rook must not slide through a friendly blocker")
	}
}

func TestBishopMoves(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		"..B.....", // white bishop c1
	)
	if !LegalMove(board, alg(t, "c1"), alg(t, "h6")) {
		t.Fatal("clear diagonal should be legal")
	}
	if LegalMove(board, alg(t, "c1"), alg(t, "c4")) {
		t.Fatal("bishop must not move straight")
	}
}

func TestQueenMoves(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		"...Q....", // white queen d1
	)
	if !LegalMove(board, alg(t, "d1"), alg(t, "d8")) {
		t.Fatal("queen straight slide should be legal")
	}
	if !LegalMove(board, alg(t, "d1"), alg(t, "h5")) {
		t.Fatal("queen diagonal slide should be legal")
	}
	if LegalMove(board, alg(t, "d1"), alg(t, "e3")) {
		t.Fatal("queen must not make a knight move")
	}
}

func TestKnightMoves(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		"...N....", // white knight d4
		"...P.p..", // white pawn d3, black pawn f3
		"..P.P...", // white pawns c2 e2 hem the knight in
		emptyRow,
	)
	legal := []string{"b5", "c6", "e6", "f5", "f3", "b3"}
	for _, to := range legal {
		if !LegalMove(board, alg(t, "d4"), alg(t, to)) {
			t.Errorf("knight d4->%s should be legal", to)
		}
	}
	illegal := []string{"d5", "e5", "c2", "e2", "d4", "h8"}
	for _, to := range illegal {
		if LegalMove(board, alg(t, "d4"), alg(t, to)) {
			t.Errorf("knight d4->%s should be illegal", to)
		}
	}
}

func TestKingMoves(t *testing.T) {
	board := boardFromRows(t,
		emptyRow,
		emptyRow,
		emptyRow,
		emptyRow,
		"...r....", // black rook d4
		"...KP...", // white king d3, white pawn e3
		emptyRow,
		emptyRow,
	)
	if !LegalMove(board, alg(t, "d3"), alg(t, "c4")) {
		t.Fatal("one-step diagonal should be legal")
	}
	if !LegalMove(board, alg(t, "d3"), alg(t, "d4")) {
		t.Fatal("capturing the adjacent rook should be legal (no check concept)")
	}
	if LegalMove(board, alg(t, "d3"), alg(t, "e3")) {
		t.Fatal("one-step onto own pawn must be illegal")
	}
	if LegalMove(board, alg(t, "d3"), alg(t, "d1")) {
		t.Fatal("two-step slide must be illegal for the king")
	}
	if LegalMove(board, alg(t, "d3"), alg(t, "f5")) {
		t.Fatal("two-step diagonal must be illegal for the king")
	}
}

func TestZeroLengthMoveAlwaysIllegal(t *testing.T) {
	board := NewStartingBoard()
	for _, sq := range []string{"a1", "b1", "c1", "d1", "e1", "a2"} {
		if LegalMove(board, alg(t, sq), alg(t, sq)) {
			t.Errorf("zero-length move on %s must be illegal", sq)
		}
	}
}

func TestOwnSquareDestinationAlwaysIllegal(t *testing.T) {
	board := NewStartingBoard()
	cases := [][2]string{
		{"a1", "a2"}, // rook onto own pawn
		{"b1", "d2"}, // knight onto own pawn
		{"c1", "b2"}, // bishop onto own pawn
		{"d1", "d2"}, // queen onto own pawn
		{"e1", "e2"}, // king onto own pawn
	}
	for _, c := range cases {
		if LegalMove(board, alg(t, c[0]), alg(t, c[1])) {
			t.Errorf("%s->%s lands on an own piece and must be illegal", c[0], c[1])
		}
	}
}

func TestMovesBeyondBoardRejected(t *testing.T) {
	board := NewStartingBoard()
	if LegalMove(board, Square{7, 0}, Square{8, 0}) {
		t.Fatal("target below the board must be rejected")
	}
	if LegalMove(board, Square{-1, 0}, Square{0, 0}) {
		t.Fatal("start off the board must be rejected")
	}
}

func TestEmptyStartSquareRejected(t *testing.T) {
	board := NewStartingBoard()
	if LegalMove(board, alg(t, "d4"), alg(t, "d5")) {
		t.Fatal("moving from an empty square must be rejected")
	}
}
