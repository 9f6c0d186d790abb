package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-api/internal/config"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository/sqlite"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-api/transport/rest"
	"github.com/rocketscienceinc/tictactoe-api/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type repositories struct {
	players repository.PlayerRepository
	games   repository.GameRepository
	moves   repository.MoveRepository
	close   func() error
}

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := repos.close(); closeErr != nil {
			log.Error("could not close storage", "error", closeErr)
		}
	}()

	recorder := metrics.NewRecorder()
	manager := usecase.NewGameManager(logger, repos.players, repos.games, repos.moves,
		usecase.WithMetrics(recorder),
		usecase.WithListLimits(conf.Games.ListLimit, conf.Games.MaxListLimit),
	)

	restServer := rest.NewServer(logger, manager, recorder, rest.Options{
		AllowedOrigin:  conf.CORS.AllowedOrigin,
		MovesPerSecond: conf.RateLimit.MovesPerSecond,
		MoveBurst:      conf.RateLimit.Burst,
	})

	wsServer := websocket.New(logger, manager, conf.CORS.AllowedOrigin)
	manager.OnUpdate(wsServer.Publish)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- restServer.Start(ctx, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsErrCh <- wsServer.Start(ctx, conf.SocketPort)
	}()

	select {
	case err = <-httpErrCh:
		stop()
		<-wsErrCh
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	case err = <-wsErrCh:
		stop()
		<-httpErrCh
		if err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
		httpErr, wsErr := <-httpErrCh, <-wsErrCh
		if err = errors.Join(httpErr, wsErr); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

// ReplayGame - rebuilds a stored game from its move log and prints every step to out.
func ReplayGame(logger *slog.Logger, conf *config.Config, gameID string, out io.Writer) error {
	ctx := context.Background()

	repos, err := openRepositories(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := repos.close(); closeErr != nil {
			logger.Error("could not close storage", "error", closeErr)
		}
	}()

	manager := usecase.NewGameManager(logger, repos.players, repos.games, repos.moves)

	game, steps, err := manager.ReplayGame(ctx, gameID)
	for _, step := range steps {
		fmt.Fprintf(out, "#%d %s (%d,%d)\n%s\n", step.Move.Sequence, step.Move.Symbol, step.Move.X, step.Move.Y, formatBoard(step.Board))
	}

	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	result := game.Outcome.Label()
	if result == "" {
		result = "in progress, " + string(game.NextTurn) + " to move"
	}
	fmt.Fprintf(out, "result: %s\n", result)

	return nil
}

// openRepositories - connects the configured storage driver and builds the repositories on top of it.
func openRepositories(ctx context.Context, logger *slog.Logger, conf *config.Config) (*repositories, error) {
	log := logger.With("component", "storage", "driver", conf.Storage.Driver)

	var repos *repositories

	switch conf.Storage.Driver {
	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		repos = &repositories{
			players: sqlite.NewPlayerRepository(sqliteStorage.Connection),
			games:   sqlite.NewGameRepository(sqliteStorage.Connection),
			moves:   sqlite.NewMoveRepository(sqliteStorage.Connection),
			close:   sqliteStorage.Close,
		}

	case config.DriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
			Addr:     redisAddrString,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		repos = &repositories{
			players: repository.NewPlayerRepository(redisStorage.Connection),
			games:   repository.NewGameRepository(redisStorage.Connection),
			moves:   repository.NewMoveRepository(redisStorage.Connection),
			close:   redisStorage.Close,
		}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}

	if conf.PlayerCache.Enabled {
		cached, err := repository.NewCachedPlayerRepository(repos.players, conf.PlayerCache.MaxCost, conf.PlayerCache.TTL)
		if err != nil {
			_ = repos.close()
			return nil, fmt.Errorf("could not create player cache: %w", err)
		}
		repos.players = cached
	}

	log.Info("storage ready", "player_cache", conf.PlayerCache.Enabled)

	return repos, nil
}

func formatBoard(board entity.Board) string {
	var out strings.Builder
	for x := range entity.BoardSize {
		if x > 0 {
			out.WriteByte('\n')
		}
		for y := range entity.BoardSize {
			cell := board.Cell(x, y)
			if cell == entity.None {
				cell = "."
			}
			out.WriteString(string(cell))
		}
	}

	return out.String()
}
