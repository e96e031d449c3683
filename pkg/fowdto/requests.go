package fowdto

// CreateGameResponse is returned by POST /api/games.
type CreateGameResponse struct {
	GameID string `json:"game_id"`
}

// MoveRequest names the two squares in algebraic form ("e2", "e4").
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MoveResponse reports whether the move was applied. Reason is set only on
// rule rejections; malformed input is a transport-level error instead.
type MoveResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Turn     string `json:"turn"`
	Outcome  string `json:"outcome"`
}

// WatchFrame is one websocket message on the live watch stream.
type WatchFrame struct {
	State GameState `json:"state"`
	Board BoardView `json:"board"`
}
