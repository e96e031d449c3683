package fow

import (
	"fmt"
	"strings"
)

// Snapshot is the serializable form of a game, used by session stores.
// Board is eight 8-rune rows joined by '/', row 0 first, '.' for empty.
type Snapshot struct {
	Board   string  `json:"board"`
	Turn    Color   `json:"turn"`
	Outcome Outcome `json:"outcome"`
}

const snapshotEmpty = '.'

// Snapshot encodes the current game state.
func (g *Game) Snapshot() Snapshot {
	rows := make([]string, BoardSize)
	for row := 0; row < BoardSize; row++ {
		var b strings.Builder
		for col := 0; col < BoardSize; col++ {
			if p, ok := g.board.PieceAt(Square{row, col}); ok {
				b.WriteRune(p.Symbol())
			} else {
				b.WriteRune(snapshotEmpty)
			}
		}
		rows[row] = b.String()
	}
	return Snapshot{
		Board:   strings.Join(rows, "/"),
		Turn:    g.turn,
		Outcome: g.outcome,
	}
}

// RestoreGame rebuilds a game from a snapshot, rejecting malformed boards,
// unknown symbols, and invalid turn or outcome values.
func RestoreGame(s Snapshot) (*Game, error) {
	if !s.Turn.Valid() {
		return nil, fmt.Errorf("restore game: bad turn %q", s.Turn)
	}
	switch s.Outcome {
	case OutcomeInProgress, OutcomeWhiteWins, OutcomeBlackWins:
	default:
		return nil, fmt.Errorf("restore game: bad outcome %q", s.Outcome)
	}

	rows := strings.Split(s.Board, "/")
	if len(rows) != BoardSize {
		return nil, fmt.Errorf("restore game: want %d rows, got %d", BoardSize, len(rows))
	}
	board := &Board{}
	for row, line := range rows {
		cells := []rune(line)
		if len(cells) != BoardSize {
			return nil, fmt.Errorf("restore game: row %d has %d cells", row, len(cells))
		}
		for col, r := range cells {
			if r == snapshotEmpty {
				continue
			}
			p, ok := pieceFromSymbol(r)
			if !ok {
				return nil, fmt.Errorf("restore game: unknown symbol %q at row %d col %d", r, row, col)
			}
			board.place(Square{row, col}, p)
		}
	}
	return &Game{board: board, turn: s.Turn, outcome: s.Outcome}, nil
}
