package presenter

import (
	"errors"
	"strings"
	"testing"

	"github.com/mgrz/fog-chess-server/internal/fow"
	"github.com/mgrz/fog-chess-server/internal/msgcat"
)

func newFormatter(t *testing.T) *Formatter {
	t.Helper()
	catalog, err := msgcat.New("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewFormatter(catalog)
}

func TestBoardLayout(t *testing.T) {
	f := newFormatter(t)
	grid := fow.RenderBoard(fow.NewStartingBoard(), fow.PerspectiveAudience)
	out := f.Board(grid)

	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("board should have 8 rank lines plus the file footer, got %d lines", len(lines))
	}
	if lines[0] != "8 | r n b q k b n r |" {
		t.Fatalf("rank 8 line = %q", lines[0])
	}
	if lines[7] != "1 | R N B Q K B N R |" {
		t.Fatalf("rank 1 line = %q", lines[7])
	}
	if lines[8] != "    a b c d e f g h" {
		t.Fatalf("file footer = %q", lines[8])
	}
}

func TestBoardShowsFog(t *testing.T) {
	f := newFormatter(t)
	grid := fow.RenderBoard(fow.NewStartingBoard(), fow.PerspectiveWhite)
	out := f.Board(grid)

	lines := strings.Split(out, "\n")
	if lines[0] != "8 | * * * * * * * * |" {
		t.Fatalf("obscured rank = %q", lines[0])
	}
	if lines[3] != "5 |                 |" {
		t.Fatalf("empty rank = %q", lines[3])
	}
}

func TestTurnPrompt(t *testing.T) {
	f := newFormatter(t)
	got := f.TurnPrompt(fow.White)
	if !strings.HasPrefix(got, "White to move.") {
		t.Fatalf("white prompt = %q", got)
	}
	got = f.TurnPrompt(fow.Black)
	if !strings.HasPrefix(got, "Black to move.") {
		t.Fatalf("black prompt = %q", got)
	}
}

func TestReasonMapping(t *testing.T) {
	f := newFormatter(t)
	tests := []struct {
		err  error
		want string
	}{
		{fow.ErrGameOver, "the game is already decided"},
		{fow.ErrOffBoard, "that square is not on the board"},
		{fow.ErrEmptySquare, "there is no piece on the start square"},
		{fow.ErrWrongTurn, "that piece belongs to the other side"},
		{fow.ErrIllegalMove, "that piece cannot move there"},
	}
	for _, tt := range tests {
		if got := f.Reason(tt.err); got != tt.want {
			t.Errorf("Reason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	other := errors.New("redis timeout")
	if got := f.Reason(other); got != "redis timeout" {
		t.Fatalf("unknown errors fall back to their own message, got %q", got)
	}
	if got := f.Reason(nil); got != "" {
		t.Fatalf("Reason(nil) = %q, want empty", got)
	}
}

func TestMoveRejectedAndGameOver(t *testing.T) {
	f := newFormatter(t)
	got := f.MoveRejected(fow.ErrIllegalMove)
	if got != "Invalid move: that piece cannot move there. Try again." {
		t.Fatalf("MoveRejected = %q", got)
	}
	if got := f.GameOver(fow.OutcomeWhiteWins); got != "Game over! White wins." {
		t.Fatalf("GameOver(white) = %q", got)
	}
	if got := f.GameOver(fow.OutcomeBlackWins); got != "Game over! Black wins." {
		t.Fatalf("GameOver(black) = %q", got)
	}
}
