package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// Result is the durable record of a finished game.
type Result struct {
	GameID    string
	Winner    string // "white" or "black"
	Moves     []string
	StartedAt time.Time
	EndedAt   time.Time
}

// Repository persists finished games. Implementations must tolerate the
// same result arriving twice (the move path retries on transient errors).
type Repository interface {
	SaveResult(ctx context.Context, res *Result) error
	Close() error
}

// --- Postgres ---

type pqRepository struct {
	db *sql.DB
}

// NewPQRepository opens the results database and verifies connectivity.
func NewPQRepository(databaseURL string) (Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database URL required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &pqRepository{db: db}, nil
}

func (r *pqRepository) SaveResult(ctx context.Context, res *Result) error {
	if res == nil {
		return nil
	}
	movesRaw, err := json.Marshal(res.Moves)
	if err != nil {
		return fmt.Errorf("marshal moves: %w", err)
	}
	duration := res.EndedAt.Sub(res.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	const q = `INSERT INTO fow_games (
	      game_id, winner, moves, move_count, started_at, ended_at, duration_ms
	    ) VALUES ($1,$2,$3::jsonb,$4,$5,$6,$7)
	    ON CONFLICT (game_id) DO UPDATE SET
	      winner=EXCLUDED.winner,
	      moves=EXCLUDED.moves,
	      move_count=EXCLUDED.move_count,
	      started_at=EXCLUDED.started_at,
	      ended_at=EXCLUDED.ended_at,
	      duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, q,
		res.GameID, res.Winner, string(movesRaw), len(res.Moves),
		res.StartedAt, res.EndedAt, duration,
	)
	return err
}

func (r *pqRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// --- In-memory (dev and tests) ---

// MemoryRepository keeps results in memory; used when no DATABASE_URL is
// configured and in tests, which read back through Result.
type MemoryRepository struct {
	mu      sync.RWMutex
	results map[string]*Result
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{results: make(map[string]*Result)}
}

func (m *MemoryRepository) SaveResult(_ context.Context, res *Result) error {
	if res == nil {
		return nil
	}
	cp := *res
	cp.Moves = append([]string(nil), res.Moves...)
	m.mu.Lock()
	m.results[res.GameID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepository) Close() error { return nil }

// Result returns the stored result for a game, if any.
func (m *MemoryRepository) Result(gameID string) (*Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.results[gameID]
	return res, ok
}
