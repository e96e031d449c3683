package fow

import "errors"

// Rejection reasons for ApplyMove. Every rejection leaves the game exactly
// as it was; callers may retry with corrected input.
var (
	ErrGameOver    = errors.New("game already decided")
	ErrOffBoard    = errors.New("square off the board")
	ErrEmptySquare = errors.New("no piece on start square")
	ErrWrongTurn   = errors.New("piece belongs to the other side")
	ErrIllegalMove = errors.New("illegal move for that piece")
)

// Outcome is the game result state. Terminal outcomes accept no moves.
type Outcome string

const (
	OutcomeInProgress Outcome = "IN_PROGRESS"
	OutcomeWhiteWins  Outcome = "WHITE_WINS"
	OutcomeBlackWins  Outcome = "BLACK_WINS"
)

// Decided reports whether the outcome is terminal.
func (o Outcome) Decided() bool { return o != OutcomeInProgress }

func winFor(side Color) Outcome {
	if side == White {
		return OutcomeWhiteWins
	}
	return OutcomeBlackWins
}

// Game owns one board plus turn and outcome bookkeeping. It is not safe for
// concurrent use; a host serving multiple games must serialize operations
// against each Game (instances are fully independent of each other).
type Game struct {
	board   *Board
	turn    Color
	outcome Outcome
}

// NewGame starts a game from the standard position with White to move.
func NewGame() *Game {
	return &Game{
		board:   NewStartingBoard(),
		turn:    White,
		outcome: OutcomeInProgress,
	}
}

// Turn returns the side to move.
func (g *Game) Turn() Color { return g.turn }

// Outcome returns the current result state.
func (g *Game) Outcome() Outcome { return g.outcome }

// PieceAt exposes read access to the underlying board.
func (g *Game) PieceAt(sq Square) (Piece, bool) { return g.board.PieceAt(sq) }

// Render projects the board for the given perspective. Rendering never
// mutates state and may be called at any point, including after the game
// is decided.
func (g *Game) Render(perspective Perspective) Grid {
	return RenderBoard(g.board, perspective)
}

// ApplyMove validates and applies a move for the side to move. On success
// the board is updated and either the turn flips or, when the move captured
// a King, the outcome becomes the mover's win and the game stops accepting
// moves. On failure a sentinel error is returned and nothing changes.
func (g *Game) ApplyMove(from, to Square) error {
	if g.outcome.Decided() {
		return ErrGameOver
	}
	if !from.OnBoard() || !to.OnBoard() {
		return ErrOffBoard
	}
	p, ok := g.board.PieceAt(from)
	if !ok {
		return ErrEmptySquare
	}
	if p.Color != g.turn {
		return ErrWrongTurn
	}
	if !LegalMove(g.board, from, to) {
		return ErrIllegalMove
	}

	captured, hadCapture := g.board.PieceAt(to)
	g.board.remove(from)
	g.board.place(to, p)

	if hadCapture && captured.Kind == King {
		g.outcome = winFor(g.turn)
		return nil
	}
	g.turn = g.turn.Opponent()
	return nil
}
