package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

var ErrCorruptHistory = errors.New("move history cannot be replayed")

// Step is the position reached after one replayed move.
type Step struct {
	Move  entity.Move
	Board entity.Board
	State State
}

// Replay - rebuilds a game from its ordered moves, checking each one as if it were submitted live.
func Replay(moves []entity.Move) ([]Step, error) {
	board := entity.NewBoard()
	state := InitialState()
	steps := make([]Step, 0, len(moves))

	for i, move := range moves {
		if state.IsConcluded() {
			return steps, fmt.Errorf("%w: move %d played after the game concluded", ErrCorruptHistory, i+1)
		}

		if move.Symbol != state.Turn {
			return steps, fmt.Errorf("%w: move %d by %s, expected %s", ErrCorruptHistory, i+1, move.Symbol, state.Turn)
		}

		if !IsValidMove(board, move.X, move.Y) {
			return steps, fmt.Errorf("%w: move %d at (%d,%d) is not playable", ErrCorruptHistory, i+1, move.X, move.Y)
		}

		board = ApplyMove(board, move.X, move.Y, move.Symbol)
		state = Advance(board, state.Turn)
		steps = append(steps, Step{Move: move, Board: board, State: state})
	}

	return steps, nil
}
