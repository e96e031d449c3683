// Package presenter turns core render output into text. The core hands
// back an abstract grid of symbols; everything about lines, labels, and
// wording lives here.
package presenter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mgrz/fog-chess-server/internal/fow"
	"github.com/mgrz/fog-chess-server/internal/msgcat"
)

// Formatter renders boards and user-facing messages.
type Formatter struct {
	catalog *msgcat.Catalog
}

func NewFormatter(catalog *msgcat.Catalog) *Formatter {
	return &Formatter{catalog: catalog}
}

// Board renders the grid with file letters below and rank digits on the
// left, rank 8 on top:
//
//	8 | r n b q k b n r |
//	...
//	1 | R N B Q K B N R |
//	    a b c d e f g h
func (f *Formatter) Board(grid fow.Grid) string {
	var sb strings.Builder
	for row := 0; row < fow.BoardSize; row++ {
		sb.WriteString(fmt.Sprintf("%d |", fow.BoardSize-row))
		for col := 0; col < fow.BoardSize; col++ {
			sb.WriteByte(' ')
			sb.WriteRune(grid[row][col])
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString("    a b c d e f g h")
	return sb.String()
}

// TurnPrompt asks the side to move for input.
func (f *Formatter) TurnPrompt(side fow.Color) string {
	return f.catalog.MustRender("cli.turn_prompt", map[string]string{"Side": title(string(side))})
}

// BadInput explains an unparseable command.
func (f *Formatter) BadInput() string {
	return f.catalog.MustRender("cli.bad_input", nil)
}

// QuitHint tells the player how to leave the loop.
func (f *Formatter) QuitHint() string {
	return f.catalog.MustRender("cli.quit_hint", nil)
}

// MoveRejected explains a refused move.
func (f *Formatter) MoveRejected(reason error) string {
	return f.MoveRejectedText(f.Reason(reason))
}

// MoveRejectedText wraps an already-worded reason, e.g. one sent by the
// server.
func (f *Formatter) MoveRejectedText(reason string) string {
	return f.catalog.MustRender("cli.move_rejected", map[string]string{"Reason": reason})
}

// GameOver announces the winner for a terminal outcome.
func (f *Formatter) GameOver(outcome fow.Outcome) string {
	winner := "White"
	if outcome == fow.OutcomeBlackWins {
		winner = "Black"
	}
	return f.catalog.MustRender("cli.game_over", map[string]string{"Winner": winner})
}

// Reason maps a core move rejection to catalog wording. Unknown errors fall
// back to their own message.
func (f *Formatter) Reason(err error) string {
	key := ""
	switch {
	case errors.Is(err, fow.ErrGameOver):
		key = "move.game_over"
	case errors.Is(err, fow.ErrOffBoard):
		key = "move.off_board"
	case errors.Is(err, fow.ErrEmptySquare):
		key = "move.empty_square"
	case errors.Is(err, fow.ErrWrongTurn):
		key = "move.wrong_turn"
	case errors.Is(err, fow.ErrIllegalMove):
		key = "move.illegal"
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
	return f.catalog.MustRender(key, nil)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
