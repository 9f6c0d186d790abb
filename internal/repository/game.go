package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

var ErrGameNotFound = fmt.Errorf("game %w", apperror.ErrNotFound)

const gamesByCreatedKey = "games:by-created"

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateAtomic(ctx context.Context, update entity.GameUpdate) (bool, error)
	ClaimSeat(ctx context.Context, gameID, playerID string) (bool, error)
	List(ctx context.Context, limit int) ([]*entity.Game, error)
}

// updateGameScript compares the turn, outcome and move count read by the caller and writes the new state
// only if all three still match.
var updateGameScript = redis.NewScript(`
local current = redis.call('HMGET', KEYS[1], 'next_turn', 'outcome', 'move_count')
if current[1] ~= ARGV[1] or current[2] ~= 'in_progress' or current[3] ~= ARGV[2] then
	return 0
end
redis.call('HSET', KEYS[1], 'board', ARGV[3], 'next_turn', ARGV[4], 'outcome', ARGV[5], 'move_count', ARGV[6])
if ARGV[7] ~= '' then
	redis.call('HSET', KEYS[1], 'finished_at', ARGV[7])
end
return 1
`)

// claimSeatScript seats ARGV[1] as player O only while the seat is open and the game is running.
var claimSeatScript = redis.NewScript(`
local current = redis.call('HMGET', KEYS[1], 'player_x', 'player_o', 'outcome')
if not current[1] or current[1] == ARGV[1] or current[2] ~= '' or current[3] ~= 'in_progress' then
	return 0
end
redis.call('HSET', KEYS[1], 'player_o', ARGV[1])
return 1
`)

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	fields, err := gameToHash(game)
	if err != nil {
		return err
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, gameKey(game.ID), fields)
		pipe.ZAdd(ctx, gamesByCreatedKey, redis.Z{Score: float64(game.CreatedAt.UnixNano()), Member: game.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	fields, err := that.client.HGetAll(ctx, gameKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if len(fields) == 0 {
		return nil, ErrGameNotFound
	}

	return gameFromHash(fields)
}

func (that *dbGame) UpdateAtomic(ctx context.Context, update entity.GameUpdate) (bool, error) {
	board, err := json.Marshal(update.Board)
	if err != nil {
		return false, fmt.Errorf("failed to marshal board: %w", err)
	}

	var finishedAt string
	if update.FinishedAt != nil {
		finishedAt = formatTime(*update.FinishedAt)
	}

	applied, err := updateGameScript.Run(ctx, that.client, []string{gameKey(update.GameID)},
		string(update.ExpectedTurn),
		strconv.Itoa(update.ExpectedMoveCount),
		string(board),
		string(update.NextTurn),
		string(update.Outcome),
		strconv.Itoa(update.ExpectedMoveCount+1),
		finishedAt,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to update game: %w", err)
	}

	return applied == 1, nil
}

func (that *dbGame) ClaimSeat(ctx context.Context, gameID, playerID string) (bool, error) {
	claimed, err := claimSeatScript.Run(ctx, that.client, []string{gameKey(gameID)}, playerID).Int()
	if err != nil {
		return false, fmt.Errorf("failed to claim seat: %w", err)
	}

	return claimed == 1, nil
}

// List - returns up to limit games, newest first.
func (that *dbGame) List(ctx context.Context, limit int) ([]*entity.Game, error) {
	ids, err := that.client.ZRevRange(ctx, gamesByCreatedKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list game ids: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, gameKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	games := make([]*entity.Game, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}

		game, err := gameFromHash(fields)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

func gameToHash(game *entity.Game) (map[string]any, error) {
	board, err := json.Marshal(game.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	fields := map[string]any{
		"id":         game.ID,
		"player_x":   game.PlayerX,
		"player_o":   game.PlayerO,
		"board":      string(board),
		"next_turn":  string(game.NextTurn),
		"outcome":    string(game.Outcome),
		"move_count": game.MoveCount,
		"created_at": formatTime(game.CreatedAt),
	}
	if game.FinishedAt != nil {
		fields["finished_at"] = formatTime(*game.FinishedAt)
	}

	return fields, nil
}

func gameFromHash(fields map[string]string) (*entity.Game, error) {
	game := &entity.Game{
		ID:      fields["id"],
		PlayerX: fields["player_x"],
		PlayerO: fields["player_o"],
	}

	if err := json.Unmarshal([]byte(fields["board"]), &game.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board of game %s: %w", game.ID, err)
	}

	var err error
	if game.NextTurn, err = entity.ParseSymbol(fields["next_turn"]); err != nil {
		return nil, fmt.Errorf("game %s: %w", game.ID, err)
	}

	if game.Outcome, err = entity.ParseOutcome(fields["outcome"]); err != nil {
		return nil, fmt.Errorf("game %s: %w", game.ID, err)
	}

	if game.MoveCount, err = strconv.Atoi(fields["move_count"]); err != nil {
		return nil, fmt.Errorf("game %s: invalid move count: %w", game.ID, err)
	}

	if game.CreatedAt, err = parseTime(fields["created_at"]); err != nil {
		return nil, fmt.Errorf("game %s: invalid created_at: %w", game.ID, err)
	}

	if value := fields["finished_at"]; value != "" {
		finishedAt, err := parseTime(value)
		if err != nil {
			return nil, fmt.Errorf("game %s: invalid finished_at: %w", game.ID, err)
		}
		game.FinishedAt = &finishedAt
	}

	return game, nil
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
