package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-api/internal/tictactoe"
)

const (
	defaultListLimit    = 20
	defaultMaxListLimit = 100
)

// MoveResult is the outcome of an accepted submission: the recorded move and the game after it.
type MoveResult struct {
	Move *entity.Move `json:"move"`
	Game *entity.Game `json:"game"`
}

// Update is pushed to listeners after a game changed. Move is nil when a player joined.
type Update struct {
	Game *entity.Game
	Move *entity.Move
}

type UpdateListener func(update Update)

type Option func(*GameManager)

// WithClock - overrides the time source used for createdAt, finishedAt and move timestamps.
func WithClock(now func() time.Time) Option {
	return func(that *GameManager) {
		that.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(that *GameManager) {
		that.newID = newID
	}
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(that *GameManager) {
		that.metrics = recorder
	}
}

func WithListLimits(limit, maxLimit int) Option {
	return func(that *GameManager) {
		that.listLimit = limit
		that.maxListLimit = maxLimit
	}
}

type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepoDep
	gameRepo   gameRepoDep
	moveRepo   moveRepoDep

	sanitizer *bluemonday.Policy
	metrics   *metrics.Recorder
	now       func() time.Time
	newID     func() string

	listLimit    int
	maxListLimit int

	mu        sync.RWMutex
	listeners []UpdateListener
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepoDep, gameRepo gameRepoDep, moveRepo moveRepoDep, opts ...Option) *GameManager {
	manager := &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		moveRepo:   moveRepo,

		sanitizer:    bluemonday.StrictPolicy(),
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
		listLimit:    defaultListLimit,
		maxListLimit: defaultMaxListLimit,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// OnUpdate - registers a listener called after every accepted move and join.
func (that *GameManager) OnUpdate(listener UpdateListener) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.listeners = append(that.listeners, listener)
}

// SubmitMove - validates and applies one move for playerID at (x, y).
// Rejections are returned as apperror sentinels and leave the stored game and move log untouched.
func (that *GameManager) SubmitMove(ctx context.Context, gameID, playerID string, x, y int) (*MoveResult, error) {
	log := that.logger.With("method", "SubmitMove", "game_id", gameID, "player_id", playerID, "x", x, "y", y)

	result, err := that.submitMove(ctx, gameID, playerID, x, y)
	that.metrics.RecordMove(moveResultLabel(err))

	if err != nil {
		if IsRejection(err) {
			log.Info("move rejected", "reason", err.Error())
		} else {
			log.Error("move failed", "error", err)
		}

		return nil, err
	}

	log.Info("move accepted", "outcome", result.Game.Outcome, "move_count", result.Game.MoveCount)
	that.notify(Update{Game: result.Game, Move: result.Move})

	return result, nil
}

func (that *GameManager) submitMove(ctx context.Context, gameID, playerID string, x, y int) (*MoveResult, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	symbol := game.SymbolOf(playerID)
	if symbol == entity.None {
		return nil, apperror.ErrNotAParticipant
	}

	if symbol != game.NextTurn {
		return nil, apperror.ErrNotYourTurn
	}

	if !tictactoe.IsValidMove(game.Board, x, y) {
		return nil, fmt.Errorf("%w: cell (%d,%d) is unavailable", apperror.ErrInvalidMove, x, y)
	}

	board := tictactoe.ApplyMove(game.Board, x, y, symbol)
	state := tictactoe.Advance(board, game.NextTurn)
	now := that.now()

	update := entity.GameUpdate{
		GameID:            game.ID,
		ExpectedTurn:      game.NextTurn,
		ExpectedMoveCount: game.MoveCount,
		Board:             board,
		NextTurn:          state.Turn,
		Outcome:           state.Outcome,
	}
	if state.IsConcluded() {
		update.FinishedAt = &now
	}

	applied, err := that.gameRepo.UpdateAtomic(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if !applied {
		return nil, apperror.ErrConflict
	}

	updated := update.Apply(game)

	move := &entity.Move{
		ID:        that.newID(),
		GameID:    game.ID,
		PlayerID:  playerID,
		X:         x,
		Y:         y,
		Symbol:    symbol,
		Sequence:  updated.MoveCount,
		Timestamp: now,
	}

	// the game row is already committed; a failure here leaves a gap in history that Replay reports
	if err = that.moveRepo.Insert(ctx, move); err != nil {
		return nil, fmt.Errorf("failed to record move %d of game %s: %w", move.Sequence, game.ID, err)
	}

	return &MoveResult{Move: move, Game: updated}, nil
}

// CreateGame - opens a game with playerXID as X. playerOID may be empty to wait for an opponent.
func (that *GameManager) CreateGame(ctx context.Context, playerXID, playerOID string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	if playerOID != "" && playerOID == playerXID {
		return nil, apperror.ErrSamePlayer
	}

	if _, err := that.playerRepo.GetByID(ctx, playerXID); err != nil {
		return nil, fmt.Errorf("failed to get player X: %w", err)
	}

	if playerOID != "" {
		if _, err := that.playerRepo.GetByID(ctx, playerOID); err != nil {
			return nil, fmt.Errorf("failed to get player O: %w", err)
		}
	}

	game := entity.NewGame(that.newID(), playerXID, playerOID, that.now())
	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("game created", "game_id", game.ID, "player_x_id", playerXID, "player_o_id", playerOID)

	return game, nil
}

// JoinGame - seats the player named username as O, creating the player if needed.
func (that *GameManager) JoinGame(ctx context.Context, gameID, username string) (*entity.Game, error) {
	log := that.logger.With("method", "JoinGame", "game_id", gameID)

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	player, err := that.getOrCreatePlayer(ctx, username)
	if err != nil {
		return nil, err
	}

	if err = seatError(game, player.ID); err != nil {
		return nil, err
	}

	claimed, err := that.gameRepo.ClaimSeat(ctx, gameID, player.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim seat: %w", err)
	}

	game, err = that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload game: %w", err)
	}

	if !claimed {
		if err = seatError(game, player.ID); err != nil {
			return nil, err
		}
		return nil, apperror.ErrGameFull
	}

	log.Info("player joined", "player_id", player.ID)
	that.notify(Update{Game: game})

	return game, nil
}

// seatError classifies why playerID cannot take the O seat of game, or returns nil if it can.
func seatError(game *entity.Game, playerID string) error {
	switch {
	case game.IsFinished():
		return apperror.ErrGameFinished
	case game.SymbolOf(playerID) != entity.None:
		return apperror.ErrAlreadyParticipant
	case !game.HasOpenSeat():
		return apperror.ErrGameFull
	default:
		return nil
	}
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ListGames - returns the newest games. A non-positive limit means the default, larger ones are capped.
func (that *GameManager) ListGames(ctx context.Context, limit int) ([]*entity.Game, error) {
	switch {
	case limit <= 0:
		limit = that.listLimit
	case limit > that.maxListLimit:
		limit = that.maxListLimit
	}

	games, err := that.gameRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	if games == nil {
		games = []*entity.Game{}
	}

	return games, nil
}

func (that *GameManager) notify(update Update) {
	that.mu.RLock()
	listeners := that.listeners
	that.mu.RUnlock()

	for _, listener := range listeners {
		listener(update)
	}
}

// IsRejection - reports whether err is an expected outcome reported to the caller rather than a failure.
func IsRejection(err error) bool {
	for _, target := range []error{
		apperror.ErrNotFound,
		apperror.ErrGameFinished,
		apperror.ErrNotAParticipant,
		apperror.ErrNotYourTurn,
		apperror.ErrInvalidMove,
		apperror.ErrConflict,
		apperror.ErrDuplicateUsername,
		apperror.ErrInvalidUsername,
		apperror.ErrGameFull,
		apperror.ErrAlreadyParticipant,
		apperror.ErrSamePlayer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func moveResultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultAccepted
	case errors.Is(err, apperror.ErrConflict):
		return metrics.ResultConflict
	case IsRejection(err):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
