package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/tictactoe"
)

// History is a game with its full move log.
type History struct {
	Game  *entity.Game            `json:"game"`
	Moves []entity.MoveWithPlayer `json:"moves"`
}

// GetHistory - returns the game and its moves in play order, each with the mover's username.
func (that *GameManager) GetHistory(ctx context.Context, gameID string) (*History, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	moves, err := that.moveRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	usernames := make(map[string]string, 2)
	history := &History{
		Game:  game,
		Moves: make([]entity.MoveWithPlayer, 0, len(moves)),
	}

	for _, move := range moves {
		username, ok := usernames[move.PlayerID]
		if !ok {
			player, err := that.playerRepo.GetByID(ctx, move.PlayerID)
			if err != nil {
				return nil, fmt.Errorf("failed to get player of move %s: %w", move.ID, err)
			}
			username = player.Username
			usernames[move.PlayerID] = username
		}

		history.Moves = append(history.Moves, entity.MoveWithPlayer{Move: move, Username: username})
	}

	return history, nil
}

// ReplayGame - rebuilds the game from its move log and checks that the result matches the stored snapshot.
func (that *GameManager) ReplayGame(ctx context.Context, gameID string) (*entity.Game, []tictactoe.Step, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	moves, err := that.moveRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list moves: %w", err)
	}

	steps, err := tictactoe.Replay(moves)
	if err != nil {
		return game, steps, fmt.Errorf("game %s: %w", gameID, err)
	}

	board, state := entity.NewBoard(), tictactoe.InitialState()
	if len(steps) > 0 {
		last := steps[len(steps)-1]
		board, state = last.Board, last.State
	}

	if len(moves) != game.MoveCount || board != game.Board || state.Turn != game.NextTurn || state.Outcome != game.Outcome {
		return game, steps, fmt.Errorf("game %s: %w: replayed state differs from stored game", gameID, tictactoe.ErrCorruptHistory)
	}

	return game, steps, nil
}
