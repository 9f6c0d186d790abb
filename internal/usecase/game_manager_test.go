package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-api/mocks/usecase"
)

var (
	errRedisDown = errors.New("redis down")
	fixedNow     = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

type mocks struct {
	players *mockedUseCase.MockplayerRepoDep
	games   *mockedUseCase.MockgameRepoDep
	moves   *mockedUseCase.MockmoveRepoDep
}

// newMockedManager builds a manager whose repositories fail the test on any call that was not expected.
func newMockedManager(t *testing.T) (*GameManager, mocks) {
	t.Helper()

	m := mocks{
		players: mockedUseCase.NewMockplayerRepoDep(t),
		games:   mockedUseCase.NewMockgameRepoDep(t),
		moves:   mockedUseCase.NewMockmoveRepoDep(t),
	}

	manager := NewGameManager(slog.New(slog.NewTextHandler(io.Discard, nil)), m.players, m.games, m.moves,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "generated" }),
	)

	return manager, m
}

func runningGame() *entity.Game {
	game := entity.NewGame("g1", "px", "po", fixedNow.Add(-time.Hour))
	game.Board[1][1] = entity.SymbolX
	game.NextTurn = entity.SymbolO
	game.MoveCount = 1
	return game
}

func TestGameManager_SubmitMove_Rejections(t *testing.T) {
	ctx := context.Background()

	finished := runningGame()
	finished.Outcome = entity.OutcomeDraw
	finished.NextTurn = entity.None

	tests := []struct {
		name     string
		game     *entity.Game
		getErr   error
		playerID string
		x, y     int
		want     error
	}{
		{"Unknown game", nil, apperror.ErrNotFound, "po", 0, 0, apperror.ErrNotFound},
		{"Finished game beats every other check", finished, nil, "stranger", 9, 9, apperror.ErrGameFinished},
		{"Stranger beats turn and cell checks", runningGame(), nil, "stranger", 1, 1, apperror.ErrNotAParticipant},
		{"Wrong turn beats cell check", runningGame(), nil, "px", 1, 1, apperror.ErrNotYourTurn},
		{"Occupied cell", runningGame(), nil, "po", 1, 1, apperror.ErrInvalidMove},
		{"Out of range cell", runningGame(), nil, "po", 3, 0, apperror.ErrInvalidMove},
		{"Negative cell", runningGame(), nil, "po", 0, -1, apperror.ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a stored game and repositories that allow nothing but the read
			manager, m := newMockedManager(t)
			m.games.EXPECT().GetByID(mock.Anything, "g1").Return(tt.game, tt.getErr).Once()

			// When: submitting the move
			result, err := manager.SubmitMove(ctx, "g1", tt.playerID, tt.x, tt.y)

			// Then: it is rejected with the expected kind and no write happens
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, result)
			assert.True(t, IsRejection(err))
			m.games.AssertNotCalled(t, "UpdateAtomic", mock.Anything, mock.Anything)
			m.moves.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}

	t.Run("Empty player id is not a participant of a waiting game", func(t *testing.T) {
		manager, m := newMockedManager(t)
		waiting := entity.NewGame("g1", "px", "", fixedNow)
		m.games.EXPECT().GetByID(mock.Anything, "g1").Return(waiting, nil).Once()

		_, err := manager.SubmitMove(ctx, "g1", "", 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotAParticipant)
	})
}

func TestGameManager_SubmitMove_Accepted(t *testing.T) {
	ctx := context.Background()

	// Given: O to move in a running game
	manager, m := newMockedManager(t)
	game := runningGame()
	m.games.EXPECT().GetByID(mock.Anything, "g1").Return(game, nil).Once()

	var written entity.GameUpdate
	m.games.EXPECT().UpdateAtomic(mock.Anything, mock.Anything).
		Run(func(_ context.Context, update entity.GameUpdate) { written = update }).
		Return(true, nil).
		Once()

	var recorded *entity.Move
	m.moves.EXPECT().Insert(mock.Anything, mock.AnythingOfType("*entity.Move")).
		Run(func(_ context.Context, move *entity.Move) { recorded = move }).
		Return(nil).
		Once()

	var pushed []Update
	manager.OnUpdate(func(update Update) { pushed = append(pushed, update) })

	// When: O plays the corner
	result, err := manager.SubmitMove(ctx, "g1", "po", 0, 2)

	// Then: the update compares against the state that was read
	require.NoError(t, err)
	assert.Equal(t, entity.SymbolO, written.ExpectedTurn)
	assert.Equal(t, 1, written.ExpectedMoveCount)
	assert.Equal(t, entity.SymbolX, written.NextTurn)
	assert.Equal(t, entity.OutcomeInProgress, written.Outcome)
	assert.Nil(t, written.FinishedAt)

	// And: the recorded move carries the symbol, the sequence and the same timestamp
	expectedMove := &entity.Move{
		ID: "generated", GameID: "g1", PlayerID: "po", X: 0, Y: 2,
		Symbol: entity.SymbolO, Sequence: 2, Timestamp: fixedNow,
	}
	assert.Equal(t, expectedMove, recorded)
	assert.Equal(t, expectedMove, result.Move)
	assert.Equal(t, 2, result.Game.MoveCount)
	assert.Equal(t, entity.SymbolO, result.Game.Board[0][2])

	// And: the snapshot read from the store is not modified
	assert.Equal(t, entity.None, game.Board[0][2])

	require.Len(t, pushed, 1)
	assert.Equal(t, result.Game, pushed[0].Game)
}

func TestGameManager_SubmitMove_Concluding(t *testing.T) {
	ctx := context.Background()

	// Given: X about to complete the top row
	manager, m := newMockedManager(t)
	game := entity.NewGame("g1", "px", "po", fixedNow)
	game.Board = entity.Board{{entity.SymbolX, entity.SymbolX, entity.None}, {entity.SymbolO, entity.SymbolO, entity.None}}
	game.MoveCount = 4
	m.games.EXPECT().GetByID(mock.Anything, "g1").Return(game, nil).Once()

	var written entity.GameUpdate
	m.games.EXPECT().UpdateAtomic(mock.Anything, mock.Anything).
		Run(func(_ context.Context, update entity.GameUpdate) { written = update }).
		Return(true, nil).
		Once()
	m.moves.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil).Once()

	// When: X plays (0,2)
	result, err := manager.SubmitMove(ctx, "g1", "px", 0, 2)

	// Then: the game is won, nobody moves next and finishedAt equals the move timestamp
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWonByX, written.Outcome)
	assert.Equal(t, entity.None, written.NextTurn)
	require.NotNil(t, written.FinishedAt)
	assert.Equal(t, fixedNow, *written.FinishedAt)
	assert.Equal(t, result.Move.Timestamp, *result.Game.FinishedAt)
}

func TestGameManager_SubmitMove_Conflict(t *testing.T) {
	ctx := context.Background()

	// Given: the conditional update finds the game already changed
	manager, m := newMockedManager(t)
	m.games.EXPECT().GetByID(mock.Anything, "g1").Return(runningGame(), nil).Once()
	m.games.EXPECT().UpdateAtomic(mock.Anything, mock.Anything).Return(false, nil).Once()

	// When: submitting
	result, err := manager.SubmitMove(ctx, "g1", "po", 0, 0)

	// Then: the caller gets a conflict, no move is recorded and nothing is retried
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Nil(t, result)
	m.moves.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	m.games.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGameManager_SubmitMove_InfrastructureFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("Read failure is opaque", func(t *testing.T) {
		manager, m := newMockedManager(t)
		m.games.EXPECT().GetByID(mock.Anything, "g1").Return(nil, errRedisDown).Once()

		_, err := manager.SubmitMove(ctx, "g1", "po", 0, 0)

		require.ErrorIs(t, err, errRedisDown)
		assert.False(t, IsRejection(err))
	})

	t.Run("Update failure records nothing", func(t *testing.T) {
		manager, m := newMockedManager(t)
		m.games.EXPECT().GetByID(mock.Anything, "g1").Return(runningGame(), nil).Once()
		m.games.EXPECT().UpdateAtomic(mock.Anything, mock.Anything).Return(false, errRedisDown).Once()

		_, err := manager.SubmitMove(ctx, "g1", "po", 0, 0)

		require.ErrorIs(t, err, errRedisDown)
		m.moves.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Same player on both seats", func(t *testing.T) {
		manager, _ := newMockedManager(t)

		_, err := manager.CreateGame(ctx, "px", "px")

		require.ErrorIs(t, err, apperror.ErrSamePlayer)
	})

	t.Run("Unknown opponent", func(t *testing.T) {
		manager, m := newMockedManager(t)
		m.players.EXPECT().GetByID(mock.Anything, "px").Return(&entity.Player{ID: "px"}, nil).Once()
		m.players.EXPECT().GetByID(mock.Anything, "ghost").Return(nil, apperror.ErrNotFound).Once()

		_, err := manager.CreateGame(ctx, "px", "ghost")

		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Waiting game", func(t *testing.T) {
		manager, m := newMockedManager(t)
		m.players.EXPECT().GetByID(mock.Anything, "px").Return(&entity.Player{ID: "px"}, nil).Once()
		m.games.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		game, err := manager.CreateGame(ctx, "px", "")

		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("generated", "px", "", fixedNow), game)
	})
}

func TestGameManager_JoinGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Lost race for the seat is reported as full", func(t *testing.T) {
		// Given: the seat looked open but another player claimed it first
		manager, m := newMockedManager(t)
		waiting := entity.NewGame("g1", "px", "", fixedNow)
		taken := entity.NewGame("g1", "px", "other", fixedNow)

		m.games.EXPECT().GetByID(mock.Anything, "g1").Return(waiting, nil).Once()
		m.players.EXPECT().GetByUsername(mock.Anything, "olga").Return(&entity.Player{ID: "po", Username: "olga"}, nil).Once()
		m.games.EXPECT().ClaimSeat(mock.Anything, "g1", "po").Return(false, nil).Once()
		m.games.EXPECT().GetByID(mock.Anything, "g1").Return(taken, nil).Once()

		// When: joining
		_, err := manager.JoinGame(ctx, "g1", "olga")

		// Then: the game is full
		require.ErrorIs(t, err, apperror.ErrGameFull)
	})

	t.Run("Player X cannot take the O seat", func(t *testing.T) {
		manager, m := newMockedManager(t)
		m.games.EXPECT().GetByID(mock.Anything, "g1").Return(entity.NewGame("g1", "px", "", fixedNow), nil).Once()
		m.players.EXPECT().GetByUsername(mock.Anything, "xavier").Return(&entity.Player{ID: "px", Username: "xavier"}, nil).Once()

		_, err := manager.JoinGame(ctx, "g1", "xavier")

		require.ErrorIs(t, err, apperror.ErrAlreadyParticipant)
	})

	t.Run("Finished game creates no player", func(t *testing.T) {
		manager, m := newMockedManager(t)
		finished := entity.NewGame("g1", "px", "", fixedNow)
		finished.Outcome = entity.OutcomeDraw
		m.games.EXPECT().GetByID(mock.Anything, "g1").Return(finished, nil).Once()

		_, err := manager.JoinGame(ctx, "g1", "newcomer")

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGameManager_CreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Markup is stripped from the username", func(t *testing.T) {
		manager, m := newMockedManager(t)
		m.players.EXPECT().Create(mock.Anything, &entity.Player{ID: "generated", Username: "alice"}).Return(nil).Once()

		player, err := manager.CreatePlayer(ctx, "  <b>alice</b> ")

		require.NoError(t, err)
		assert.Equal(t, "alice", player.Username)
	})

	t.Run("Blank usernames are rejected", func(t *testing.T) {
		manager, _ := newMockedManager(t)

		for _, username := range []string{"", "   ", "<script></script>"} {
			_, err := manager.CreatePlayer(ctx, username)
			require.ErrorIs(t, err, apperror.ErrInvalidUsername, "username %q", username)
		}
	})

	t.Run("Duplicate username passes through", func(t *testing.T) {
		manager, m := newMockedManager(t)
		m.players.EXPECT().Create(mock.Anything, mock.Anything).Return(apperror.ErrDuplicateUsername).Once()

		_, err := manager.CreatePlayer(ctx, "alice")

		require.ErrorIs(t, err, apperror.ErrDuplicateUsername)
	})
}

func TestGameManager_ListGames(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		requested int
		used      int
	}{
		{"Default when unset", 0, 20},
		{"Default when negative", -5, 20},
		{"Requested limit", 7, 7},
		{"Capped", 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, m := newMockedManager(t)
			m.games.EXPECT().List(mock.Anything, tt.used).Return(nil, nil).Once()

			games, err := manager.ListGames(ctx, tt.requested)

			require.NoError(t, err)
			assert.NotNil(t, games)
		})
	}
}
