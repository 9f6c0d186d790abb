package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

const maxUsernameLength = 32

// CreatePlayer - registers a player under a unique username. Markup is stripped before the name is checked.
func (that *GameManager) CreatePlayer(ctx context.Context, username string) (*entity.Player, error) {
	log := that.logger.With("method", "CreatePlayer")

	name, err := that.sanitizeUsername(username)
	if err != nil {
		return nil, err
	}

	player := &entity.Player{
		ID:       that.newID(),
		Username: name,
	}

	if err = that.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	log.Info("player created", "player_id", player.ID)

	return player, nil
}

func (that *GameManager) GetPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getOrCreatePlayer(ctx context.Context, username string) (*entity.Player, error) {
	name, err := that.sanitizeUsername(username)
	if err != nil {
		return nil, err
	}

	player, err := that.playerRepo.GetByUsername(ctx, name)
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to get player by username: %w", err)
	}

	player, err = that.CreatePlayer(ctx, name)
	if errors.Is(err, apperror.ErrDuplicateUsername) {
		// created concurrently by another request
		player, err = that.playerRepo.GetByUsername(ctx, name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) sanitizeUsername(username string) (string, error) {
	name := strings.TrimSpace(that.sanitizer.Sanitize(username))

	if name == "" || utf8.RuneCountInString(name) > maxUsernameLength {
		return "", fmt.Errorf("%w: must be 1 to %d characters", apperror.ErrInvalidUsername, maxUsernameLength)
	}

	return name, nil
}
