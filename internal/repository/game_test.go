package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/testing/suite"
)

var createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game waiting for player O
		game := entity.NewGame("g1", "px", "", createdAt)
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: a not found error should be returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_UpdateAtomic(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	game := entity.NewGame("g1", "px", "po", createdAt)
	require.NoError(t, gameRepo.Create(ctx, game))

	board := entity.NewBoard()
	board[0][0] = entity.SymbolX
	update := entity.GameUpdate{
		GameID:            game.ID,
		ExpectedTurn:      entity.SymbolX,
		ExpectedMoveCount: 0,
		Board:             board,
		NextTurn:          entity.SymbolO,
		Outcome:           entity.OutcomeInProgress,
	}

	t.Run("Matching state is updated", func(t *testing.T) {
		// When: the update expects the stored turn and move count
		applied, err := gameRepo.UpdateAtomic(ctx, update)

		// Then: it is applied
		require.NoError(t, err)
		require.True(t, applied)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, update.Apply(game), stored)
	})

	t.Run("Stale state is rejected", func(t *testing.T) {
		// When: the same update is replayed against the changed game
		applied, err := gameRepo.UpdateAtomic(ctx, update)

		// Then: nothing is written
		require.NoError(t, err)
		assert.False(t, applied)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.MoveCount)
		assert.Equal(t, entity.SymbolO, stored.NextTurn)
	})

	t.Run("Finishing update stamps finished_at", func(t *testing.T) {
		finishedAt := createdAt.Add(time.Minute)
		finishing := entity.GameUpdate{
			GameID:            game.ID,
			ExpectedTurn:      entity.SymbolO,
			ExpectedMoveCount: 1,
			Board:             board,
			NextTurn:          entity.None,
			Outcome:           entity.OutcomeDraw,
			FinishedAt:        &finishedAt,
		}

		applied, err := gameRepo.UpdateAtomic(ctx, finishing)
		require.NoError(t, err)
		require.True(t, applied)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeDraw, stored.Outcome)
		assert.Equal(t, entity.None, stored.NextTurn)
		require.NotNil(t, stored.FinishedAt)
		assert.True(t, finishedAt.Equal(*stored.FinishedAt))
	})
}

func TestGameRepository_ClaimSeat(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a game waiting for player O
	game := entity.NewGame("g1", "px", "", createdAt)
	require.NoError(t, gameRepo.Create(ctx, game))

	// When: player X tries to take the O seat
	claimed, err := gameRepo.ClaimSeat(ctx, game.ID, "px")

	// Then: the seat stays open
	require.NoError(t, err)
	assert.False(t, claimed)

	// When: another player claims it
	claimed, err = gameRepo.ClaimSeat(ctx, game.ID, "po")

	// Then: the seat is taken and a second claim fails
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = gameRepo.ClaimSeat(ctx, game.ID, "late")
	require.NoError(t, err)
	assert.False(t, claimed)

	stored, err := gameRepo.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "po", stored.PlayerO)

	t.Run("Unknown game cannot be claimed", func(t *testing.T) {
		claimed, err := gameRepo.ClaimSeat(ctx, "missing", "po")

		require.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestGameRepository_List(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: three games created a minute apart
	for i, id := range []string{"old", "mid", "new"} {
		game := entity.NewGame(id, "px", "", createdAt.Add(time.Duration(i)*time.Minute))
		require.NoError(t, gameRepo.Create(ctx, game))
	}

	// When: listing two of them
	games, err := gameRepo.List(ctx, 2)

	// Then: the newest come first
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "new", games[0].ID)
	assert.Equal(t, "mid", games[1].ID)
}
