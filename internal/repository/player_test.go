package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/testing/suite"
)

func TestPlayerRepository_Create(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	// Given: a player with ID and username
	player := &entity.Player{ID: "123", Username: "alice"}

	// When: Create is called
	err := playerRepo.Create(ctx, player)

	// Then: no error should be returned, and player is stored
	require.NoError(t, err)

	// And: the record and the username index are both written
	stored, err := st.Storage.Get(ctx, usernameKey("alice")).Result()
	require.NoError(t, err)
	assert.Equal(t, "123", stored)
	assert.Equal(t, int64(1), st.Storage.Exists(ctx, playerKey("123")).Val())

	t.Run("Duplicate username is rejected", func(t *testing.T) {
		// Given: a second player reusing the taken username
		// When: Create is called
		err := playerRepo.Create(ctx, &entity.Player{ID: "456", Username: "alice"})

		// Then: it is a duplicate, nothing is written and the name still resolves to the first player
		require.ErrorIs(t, err, apperror.ErrDuplicateUsername)

		_, err = playerRepo.GetByID(ctx, "456")
		require.ErrorIs(t, err, ErrPlayerNotFound)

		owner, err := playerRepo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "123", owner.ID)
	})
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a stored player
		player := &entity.Player{ID: "123", Username: "alice"}
		require.NoError(t, playerRepo.Create(ctx, player))

		// When: GetByID is called with existing ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player should match the saved player
		require.NoError(t, err)
		require.Equal(t, player, retrievedPlayer)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, "9999999")

		// Then: an ErrPlayerNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrPlayerNotFound, err)
		assert.Nil(t, retrievedPlayer)
	})
}

func TestPlayerRepository_GetByUsername(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	player := &entity.Player{ID: "123", Username: "alice"}
	require.NoError(t, playerRepo.Create(ctx, player))

	retrievedPlayer, err := playerRepo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, player, retrievedPlayer)

	_, err = playerRepo.GetByUsername(ctx, "bob")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
