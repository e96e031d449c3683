package fow

// BoardSize is the edge length of the square board.
const BoardSize = 8

// Square addresses a board cell. Row 0 is Black's home rank (algebraic
// rank 8), row 7 is White's (rank 1).
type Square struct {
	Row int
	Col int
}

// OnBoard reports whether the square lies inside the 8x8 grid.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Board is an 8x8 grid of cells, each empty or holding exactly one piece.
// It is a plain container: occupancy rules live in the movement predicates
// and mutation is driven by the Game.
type Board struct {
	cells [BoardSize][BoardSize]Piece // zero Piece means empty
}

// PieceAt returns the piece on sq, if any. Off-board squares are empty.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.OnBoard() {
		return Piece{}, false
	}
	p := b.cells[sq.Row][sq.Col]
	return p, p.Kind != ""
}

func (b *Board) place(sq Square, p Piece) {
	b.cells[sq.Row][sq.Col] = p
}

func (b *Board) remove(sq Square) {
	b.cells[sq.Row][sq.Col] = Piece{}
}

// backRank is the home-rank arrangement, a-file to h-file.
var backRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

const (
	blackBackRow = 0
	blackPawnRow = 1
	whitePawnRow = 6
	whiteBackRow = 7
)

// NewStartingBoard returns a board with the standard chess starting
// arrangement, the only supported initial layout.
func NewStartingBoard() *Board {
	b := &Board{}
	for col := 0; col < BoardSize; col++ {
		b.place(Square{blackBackRow, col}, Piece{Black, backRank[col]})
		b.place(Square{blackPawnRow, col}, Piece{Black, Pawn})
		b.place(Square{whitePawnRow, col}, Piece{White, Pawn})
		b.place(Square{whiteBackRow, col}, Piece{White, backRank[col]})
	}
	return b
}
