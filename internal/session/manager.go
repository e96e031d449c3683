package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mgrz/fog-chess-server/internal/fow"
	"github.com/mgrz/fog-chess-server/internal/notation"
)

const watchBuffer = 8

// Manager hosts many independent game sessions. The core engine has no
// locking of its own, so the manager serializes all operations against a
// given session with a per-ID mutex; different sessions never contend.
type Manager struct {
	store  Store
	repo   Repository
	logger *zap.Logger

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	watchers map[string]map[int]chan Update
	nextSub  int
}

// MoveResult reports one move attempt. Rejection carries the rule-level
// reason (one of the fow sentinel errors) when the move was refused; the
// session is unchanged in that case.
type MoveResult struct {
	Record    *Record
	Rejection error
}

// NewManager wires a manager over a session store. The results repository
// is optional; without one, finished games are only kept until the store
// expires them.
func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    store,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
		watchers: make(map[string]map[int]chan Update),
	}
}

// AttachRepository enables finished-game persistence.
func (m *Manager) AttachRepository(r Repository) {
	if m != nil {
		m.repo = r
	}
}

// Close releases the store. Repositories are owned by the caller.
func (m *Manager) Close() error {
	if m == nil || m.store == nil {
		return nil
	}
	return m.store.Close()
}

// Create starts a new game from the standard position.
func (m *Manager) Create(ctx context.Context) (*Record, error) {
	now := time.Now()
	rec := &Record{
		ID:        "fow-" + uuid.NewString(),
		Snapshot:  fow.NewGame().Snapshot(),
		Moves:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	m.logger.Info("game_create", zap.String("game_id", rec.ID))
	return rec, nil
}

// State returns the session record for id.
func (m *Manager) State(ctx context.Context, id string) (*Record, error) {
	rec, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrSessionNotFound
	}
	return rec, nil
}

// Render loads the session and projects its board for the perspective.
func (m *Manager) Render(ctx context.Context, id string, perspective fow.Perspective) (fow.Grid, *Record, error) {
	rec, err := m.State(ctx, id)
	if err != nil {
		return fow.Grid{}, nil, err
	}
	game, err := fow.RestoreGame(rec.Snapshot)
	if err != nil {
		return fow.Grid{}, nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return game.Render(perspective), rec, nil
}

// errMoveRejected aborts a store Update without saving; the rule-level
// reason travels alongside it in the Move closure.
var errMoveRejected = errors.New("move rejected")

// Move applies one move to the session. Rule rejections come back inside
// MoveResult with the session untouched; infrastructure failures are
// returned as errors. The read-modify-write runs through Store.Update so a
// second writer on the same backend cannot be silently overwritten.
func (m *Manager) Move(ctx context.Context, id string, from, to fow.Square) (*MoveResult, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	var (
		rejection error
		rejected  *Record
		game      *fow.Game
	)
	rec, err := m.store.Update(ctx, id, func(r *Record) error {
		g, err := fow.RestoreGame(r.Snapshot)
		if err != nil {
			return fmt.Errorf("corrupt session %s: %w", id, err)
		}
		if moveErr := g.ApplyMove(from, to); moveErr != nil {
			rejection = moveErr
			rejected = r.Clone()
			return errMoveRejected
		}
		r.Moves = append(r.Moves, notation.FormatSquare(from)+notation.FormatSquare(to))
		r.Snapshot = g.Snapshot()
		r.UpdatedAt = time.Now()
		game = g
		return nil
	})
	if errors.Is(err, errMoveRejected) {
		m.logger.Debug("move_rejected",
			zap.String("game_id", id),
			zap.String("from", notation.FormatSquare(from)),
			zap.String("to", notation.FormatSquare(to)),
			zap.String("reason", rejection.Error()),
		)
		if errors.Is(rejection, fow.ErrGameOver) {
			m.releaseLock(id)
		}
		return &MoveResult{Record: rejected, Rejection: rejection}, nil
	}
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrSessionNotFound
	}

	m.logger.Info("move_applied",
		zap.String("game_id", id),
		zap.String("move", rec.Moves[len(rec.Moves)-1]),
		zap.String("turn", string(game.Turn())),
		zap.String("outcome", string(game.Outcome())),
	)

	m.notify(id, Update{Record: rec.Clone(), Grid: game.Render(fow.PerspectiveAudience)})

	if game.Outcome().Decided() {
		m.persistResult(ctx, rec, game.Outcome())
		m.closeWatchers(id)
		m.releaseLock(id)
	}
	return &MoveResult{Record: rec}, nil
}

// Watch subscribes to updates for a session. The returned cancel func must
// be called when the subscriber goes away; the channel is closed by the
// manager when the game is decided or the watch is cancelled. Watching an
// already-decided game returns a closed channel, so late subscribers see
// end-of-stream right after any initial frame they render themselves.
func (m *Manager) Watch(ctx context.Context, id string) (<-chan Update, func(), error) {
	rec, err := m.State(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan Update, watchBuffer)
	if rec.Snapshot.Outcome.Decided() {
		close(ch)
		return ch, func() {}, nil
	}
	m.mu.Lock()
	if m.watchers[id] == nil {
		m.watchers[id] = make(map[int]chan Update)
	}
	sub := m.nextSub
	m.nextSub++
	m.watchers[id][sub] = ch
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if subs, ok := m.watchers[id]; ok {
			if c, live := subs[sub]; live {
				delete(subs, sub)
				close(c)
			}
			if len(subs) == 0 {
				delete(m.watchers, id)
			}
		}
	}
	return ch, cancel, nil
}

// notify fans an update out without ever blocking the move path: a full
// subscriber channel drops its oldest frame first.
func (m *Manager) notify(id string, upd Update) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.watchers[id] {
		for {
			select {
			case ch <- upd:
			default:
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

func (m *Manager) closeWatchers(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.watchers[id] {
		close(ch)
	}
	delete(m.watchers, id)
}

// releaseLock drops the per-game mutex once a game is decided; every later
// move is rejected on the outcome alone, so serialization is no longer
// needed and the map must not grow for the life of the process.
func (m *Manager) releaseLock(id string) {
	m.mu.Lock()
	delete(m.locks, id)
	m.mu.Unlock()
}

func (m *Manager) persistResult(ctx context.Context, rec *Record, outcome fow.Outcome) {
	if m.repo == nil {
		return
	}
	winner := string(fow.White)
	if outcome == fow.OutcomeBlackWins {
		winner = string(fow.Black)
	}
	res := &Result{
		GameID:    rec.ID,
		Winner:    winner,
		Moves:     append([]string(nil), rec.Moves...),
		StartedAt: rec.CreatedAt,
		EndedAt:   rec.UpdatedAt,
	}
	if err := m.repo.SaveResult(ctx, res); err != nil {
		m.logger.Error("result_persist_error", zap.String("game_id", rec.ID), zap.Error(err))
		return
	}
	m.logger.Info("result_persist", zap.String("game_id", rec.ID), zap.String("winner", winner))
}

func (m *Manager) lockFor(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

// IsRejection reports whether err is one of the core's rule-level move
// rejections, as opposed to an infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, fow.ErrGameOver) ||
		errors.Is(err, fow.ErrOffBoard) ||
		errors.Is(err, fow.ErrEmptySquare) ||
		errors.Is(err, fow.ErrWrongTurn) ||
		errors.Is(err, fow.ErrIllegalMove)
}
