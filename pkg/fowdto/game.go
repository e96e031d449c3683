// Package fowdto defines the wire types shared by the fog chess server,
// its API client, and presenters.
package fowdto

import "time"

// GameState is the public view of one session's bookkeeping.
type GameState struct {
	GameID    string    `json:"game_id"`
	Turn      string    `json:"turn"`
	Outcome   string    `json:"outcome"`
	MoveCount int       `json:"move_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardView is one rendered projection: eight 8-character rows, row "8"
// (Black's home rank) first. Uppercase letters are white pieces, lowercase
// black, '*' an obscured enemy piece, ' ' an empty square.
type BoardView struct {
	GameID      string   `json:"game_id"`
	Perspective string   `json:"perspective"`
	Rows        []string `json:"rows"`
}
