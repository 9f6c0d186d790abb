package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

// cachedPlayer serves player reads from memory. Players never change after creation, so entries only expire.
type cachedPlayer struct {
	next  PlayerRepository
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCachedPlayerRepository - wraps next with a ristretto read cache bounded by maxCost entries.
func NewCachedPlayerRepository(next PlayerRepository, maxCost int64, ttl time.Duration) (PlayerRepository, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player cache: %w", err)
	}

	return &cachedPlayer{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}, nil
}

func (that *cachedPlayer) Create(ctx context.Context, player *entity.Player) error {
	if err := that.next.Create(ctx, player); err != nil {
		return err
	}

	that.store(player)
	return nil
}

func (that *cachedPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	if value, ok := that.cache.Get(playerKey(id)); ok {
		if player, ok := value.(entity.Player); ok {
			return &player, nil
		}
	}

	player, err := that.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	that.store(player)
	return player, nil
}

func (that *cachedPlayer) GetByUsername(ctx context.Context, username string) (*entity.Player, error) {
	if value, ok := that.cache.Get(usernameKey(username)); ok {
		if player, ok := value.(entity.Player); ok {
			return &player, nil
		}
	}

	player, err := that.next.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	that.store(player)
	return player, nil
}

// store copies the player so callers can never mutate a cached entry.
func (that *cachedPlayer) store(player *entity.Player) {
	that.cache.SetWithTTL(playerKey(player.ID), *player, 1, that.ttl)
	that.cache.SetWithTTL(usernameKey(player.Username), *player, 1, that.ttl)
}
