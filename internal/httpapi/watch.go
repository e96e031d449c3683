package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/mgrz/fog-chess-server/internal/fow"
	"github.com/mgrz/fog-chess-server/internal/session"
	"github.com/mgrz/fog-chess-server/pkg/fowdto"
)

// handleWatch upgrades to a websocket and streams audience frames: one on
// subscribe, then one per accepted move. The stream closes normally once
// the game is decided.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	updates, cancel, err := s.manager.Watch(r.Context(), id)
	if err != nil {
		s.stateError(w, err)
		return
	}
	defer cancel()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("watch_accept_failed", zap.String("game_id", id), zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	// Initial frame so a late subscriber sees the current position.
	grid, rec, err := s.manager.Render(ctx, id, fow.PerspectiveAudience)
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "render failed")
		return
	}
	if err := wsjson.Write(ctx, conn, watchFrame(rec, grid)); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, "game decided")
				return
			}
			if err := wsjson.Write(ctx, conn, watchFrame(upd.Record, upd.Grid)); err != nil {
				if !errors.Is(err, ctx.Err()) {
					s.logger.Debug("watch_write_failed", zap.String("game_id", id), zap.Error(err))
				}
				return
			}
		}
	}
}

func watchFrame(rec *session.Record, grid fow.Grid) fowdto.WatchFrame {
	return fowdto.WatchFrame{
		State: stateDTO(rec),
		Board: fowdto.BoardView{
			GameID:      rec.ID,
			Perspective: string(fow.PerspectiveAudience),
			Rows:        grid.Rows(),
		},
	}
}
