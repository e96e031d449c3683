// Package httpapi exposes the session manager as a JSON API plus a
// websocket watch stream for spectators.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mgrz/fog-chess-server/internal/fow"
	"github.com/mgrz/fog-chess-server/internal/notation"
	"github.com/mgrz/fog-chess-server/internal/session"
	"github.com/mgrz/fog-chess-server/pkg/fowdto"
)

const maxJSONBodyBytes int64 = 1 << 16

// Server wires HTTP routes to the session manager.
type Server struct {
	manager *session.Manager
	logger  *zap.Logger

	srvMu sync.Mutex
	srv   *http.Server
}

func NewServer(manager *session.Manager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{manager: manager, logger: logger}
}

// Listen serves until the listener fails or Close is called.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.logger.Info("http_listen", zap.String("addr", addr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", s.handleCreate)
	mux.HandleFunc("GET /api/games/{id}", s.handleState)
	mux.HandleFunc("POST /api/games/{id}/moves", s.handleMove)
	mux.HandleFunc("GET /api/games/{id}/board", s.handleBoard)
	mux.HandleFunc("GET /api/games/{id}/watch", s.handleWatch)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, err := s.manager.Create(r.Context())
	if err != nil {
		s.internalError(w, "create game", err)
		return
	}
	writeJSON(w, http.StatusCreated, fowdto.CreateGameResponse{GameID: rec.ID})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	rec, err := s.manager.State(r.Context(), r.PathValue("id"))
	if err != nil {
		s.stateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateDTO(rec))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req fowdto.MoveRequest
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, fowdto.ErrorResponse{Error: "malformed JSON body"})
		return
	}
	from, err := notation.ParseSquare(req.From)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, fowdto.ErrorResponse{Error: "from: " + err.Error()})
		return
	}
	to, err := notation.ParseSquare(req.To)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, fowdto.ErrorResponse{Error: "to: " + err.Error()})
		return
	}

	result, err := s.manager.Move(r.Context(), r.PathValue("id"), from, to)
	if err != nil {
		s.stateError(w, err)
		return
	}

	game, restoreErr := fow.RestoreGame(result.Record.Snapshot)
	if restoreErr != nil {
		s.internalError(w, "restore game", restoreErr)
		return
	}
	resp := fowdto.MoveResponse{
		Accepted: result.Rejection == nil,
		Turn:     string(game.Turn()),
		Outcome:  string(game.Outcome()),
	}
	status := http.StatusOK
	if result.Rejection != nil {
		resp.Reason = result.Rejection.Error()
		if errors.Is(result.Rejection, fow.ErrGameOver) {
			status = http.StatusConflict
		}
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	perspective := fow.Perspective(r.URL.Query().Get("perspective"))
	if perspective == "" {
		perspective = fow.PerspectiveAudience
	}
	if !perspective.Valid() {
		writeJSON(w, http.StatusBadRequest, fowdto.ErrorResponse{Error: "perspective must be white, black, or audience"})
		return
	}
	grid, rec, err := s.manager.Render(r.Context(), r.PathValue("id"), perspective)
	if err != nil {
		s.stateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fowdto.BoardView{
		GameID:      rec.ID,
		Perspective: string(perspective),
		Rows:        grid.Rows(),
	})
}

func (s *Server) stateError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, fowdto.ErrorResponse{Error: "game not found"})
		return
	}
	s.internalError(w, "load session", err)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("api_error", zap.String("op", op), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, fowdto.ErrorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func stateDTO(rec *session.Record) fowdto.GameState {
	return fowdto.GameState{
		GameID:    rec.ID,
		Turn:      string(rec.Snapshot.Turn),
		Outcome:   string(rec.Snapshot.Outcome),
		MoveCount: len(rec.Moves),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
