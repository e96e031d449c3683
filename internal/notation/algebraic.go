// Package notation converts algebraic square references (a1..h8) to and
// from board coordinates. The rules engine itself only ever sees
// coordinates; all text parsing stays here.
package notation

import (
	"errors"
	"strings"

	"github.com/mgrz/fog-chess-server/internal/fow"
)

var (
	ErrBadSquare = errors.New("square must be a file a-h followed by a rank 1-8")
	ErrBadMove   = errors.New("move must name two squares, e.g. e2 e4")
)

// ParseSquare converts a two-character algebraic reference into a board
// square. Rank 8 maps to row 0.
func ParseSquare(s string) (fow.Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return fow.Square{}, ErrBadSquare
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return fow.Square{}, ErrBadSquare
	}
	return fow.Square{
		Row: int('8' - rank),
		Col: int(file - 'a'),
	}, nil
}

// FormatSquare is the inverse of ParseSquare. Off-board squares format as "-".
func FormatSquare(sq fow.Square) string {
	if !sq.OnBoard() {
		return "-"
	}
	return string([]byte{byte('a' + sq.Col), byte('8' - sq.Row)})
}

// ParseMove accepts "e2 e4", "e2,e4", or the compact "e2e4" and returns the
// two squares.
func ParseMove(input string) (from, to fow.Square, err error) {
	fields := strings.FieldsFunc(strings.TrimSpace(input), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var fromText, toText string
	switch len(fields) {
	case 1:
		if len(fields[0]) != 4 {
			return fow.Square{}, fow.Square{}, ErrBadMove
		}
		fromText, toText = fields[0][:2], fields[0][2:]
	case 2:
		fromText, toText = fields[0], fields[1]
	default:
		return fow.Square{}, fow.Square{}, ErrBadMove
	}
	if from, err = ParseSquare(fromText); err != nil {
		return fow.Square{}, fow.Square{}, err
	}
	if to, err = ParseSquare(toText); err != nil {
		return fow.Square{}, fow.Square{}, err
	}
	return from, to, nil
}
