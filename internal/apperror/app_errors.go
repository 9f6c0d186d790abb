package apperror

import "errors"

// Move submission outcomes. Each is an expected result that the API reports to the caller.
var (
	ErrNotFound          = errors.New("not found")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotAParticipant   = errors.New("player is not part of this game")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInvalidMove       = errors.New("invalid move")
	ErrConflict          = errors.New("game state changed concurrently, re-fetch and retry")
	ErrDuplicateUsername = errors.New("username already taken")
)

var (
	ErrInvalidUsername    = errors.New("invalid username")
	ErrGameFull           = errors.New("game already has two players")
	ErrAlreadyParticipant = errors.New("player already sits at this game")
	ErrSamePlayer         = errors.New("player X and player O must differ")
)
