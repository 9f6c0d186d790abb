package application

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-api/internal/config"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	conf := &config.Config{
		SQLiteStoragePath: filepath.Join(t.TempDir(), "tictactoe.db"),
	}
	conf.Storage.Driver = config.DriverSQLite
	conf.PlayerCache.Enabled = true
	conf.PlayerCache.MaxCost = 100

	return conf
}

func TestReplayGame(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conf := sqliteConfig(t)

	// Given: a game where X won along the top row
	repos, err := openRepositories(ctx, logger, conf)
	require.NoError(t, err)

	manager := usecase.NewGameManager(logger, repos.players, repos.games, repos.moves)
	x, err := manager.CreatePlayer(ctx, "xavier")
	require.NoError(t, err)
	o, err := manager.CreatePlayer(ctx, "olga")
	require.NoError(t, err)
	game, err := manager.CreateGame(ctx, x.ID, o.ID)
	require.NoError(t, err)

	for i, cell := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		player := x
		if i%2 == 1 {
			player = o
		}
		_, err = manager.SubmitMove(ctx, game.ID, player.ID, cell[0], cell[1])
		require.NoError(t, err)
	}
	require.NoError(t, repos.close())

	// When: the game is replayed from a fresh connection
	var out bytes.Buffer
	err = ReplayGame(logger, conf, game.ID, &out)

	// Then: every step is printed and the result matches
	require.NoError(t, err)
	assert.Contains(t, out.String(), "#1 X (0,0)\nX..\n...\n...\n")
	assert.Contains(t, out.String(), "#5 X (0,2)\nXXX\nOO.\n...\n")
	assert.Contains(t, out.String(), "result: X\n")
}

func TestReplayGame_Unknown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := ReplayGame(logger, sqliteConfig(t), "ghost", io.Discard)

	require.Error(t, err)
}

func TestOpenRepositories_UnknownDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conf := sqliteConfig(t)
	conf.Storage.Driver = "mongo"

	_, err := openRepositories(context.Background(), logger, conf)

	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestFormatBoard(t *testing.T) {
	board := entity.NewBoard()
	board[1][1] = entity.SymbolO
	board[2][0] = entity.SymbolX

	assert.Equal(t, "...\n.O.\nX..", formatBoard(board))
}
