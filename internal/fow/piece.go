package fow

// Color identifies a side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool { return c == White || c == Black }

// Kind is the piece type tag. Movement rules dispatch on it.
type Kind string

const (
	Pawn   Kind = "pawn"
	Rook   Kind = "rook"
	Knight Kind = "knight"
	Bishop Kind = "bishop"
	Queen  Kind = "queen"
	King   Kind = "king"
)

// Piece is a value: color plus kind. Pieces carry no board position and no
// move history; two pieces with the same fields are interchangeable.
type Piece struct {
	Color Color
	Kind  Kind
}

// Symbol returns the render symbol for the piece: uppercase for white,
// lowercase for black.
func (p Piece) Symbol() rune {
	var s rune
	switch p.Kind {
	case Pawn:
		s = 'P'
	case Rook:
		s = 'R'
	case Knight:
		s = 'N'
	case Bishop:
		s = 'B'
	case Queen:
		s = 'Q'
	case King:
		s = 'K'
	default:
		return '?'
	}
	if p.Color == Black {
		return s + ('a' - 'A')
	}
	return s
}

// pieceFromSymbol is the inverse of Symbol, used by the snapshot codec.
func pieceFromSymbol(r rune) (Piece, bool) {
	color := White
	if r >= 'a' && r <= 'z' {
		color = Black
		r -= 'a' - 'A'
	}
	switch r {
	case 'P':
		return Piece{color, Pawn}, true
	case 'R':
		return Piece{color, Rook}, true
	case 'N':
		return Piece{color, Knight}, true
	case 'B':
		return Piece{color, Bishop}, true
	case 'Q':
		return Piece{color, Queen}, true
	case 'K':
		return Piece{color, King}, true
	}
	return Piece{}, false
}
