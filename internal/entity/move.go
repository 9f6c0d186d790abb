package entity

import "time"

// Move is an append-only record of one accepted submission.
type Move struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	PlayerID  string    `json:"player_id"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Symbol    Symbol    `json:"symbol"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
}

// MoveWithPlayer is a history row: the move joined with its author.
type MoveWithPlayer struct {
	Move
	Username string `json:"username"`
}
