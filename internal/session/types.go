package session

import (
	"errors"
	"time"

	"github.com/mgrz/fog-chess-server/internal/fow"
)

// ErrSessionNotFound is returned for unknown or expired game IDs.
var ErrSessionNotFound = errors.New("game session not found")

// Record is the stored state of one game session. The engine state is kept
// as a snapshot and rebuilt through the core on every operation; Moves is
// an append-only audit of accepted moves in compact algebraic form ("e2e4").
type Record struct {
	ID        string       `json:"id"`
	Snapshot  fow.Snapshot `json:"snapshot"`
	Moves     []string     `json:"moves"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Clone returns a deep copy so callers can hold a Record without racing
// the manager.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Moves = append([]string(nil), r.Moves...)
	return &cp
}

// Update is one watcher notification: the session after an accepted move
// plus the audience projection of the new board.
type Update struct {
	Record *Record
	Grid   fow.Grid
}
