package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
)

const gameColumns = `id, player_x_id, player_o_id, board, next_turn, outcome, move_count, created_at, finished_at`

type gameRepository struct {
	conn *sql.DB
}

func NewGameRepository(conn *sql.DB) repository.GameRepository {
	return &gameRepository{
		conn: conn,
	}
}

func (that *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	board, err := json.Marshal(game.Board)
	if err != nil {
		return fmt.Errorf("can't marshal board: %w", err)
	}

	query := `INSERT INTO games (` + gameColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		game.ID,
		game.PlayerX,
		nullString(game.PlayerO),
		string(board),
		nullString(string(game.NextTurn)),
		string(game.Outcome),
		game.MoveCount,
		game.CreatedAt.UnixNano(),
		nullTime(game.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *gameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = ?`

	game, err := scanGame(that.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	return game, nil
}

// UpdateAtomic - writes the new state only if the row still has the expected turn and move count and is in progress.
func (that *gameRepository) UpdateAtomic(ctx context.Context, update entity.GameUpdate) (bool, error) {
	board, err := json.Marshal(update.Board)
	if err != nil {
		return false, fmt.Errorf("can't marshal board: %w", err)
	}

	query := `UPDATE games
		SET board = ?, next_turn = ?, outcome = ?, move_count = move_count + 1, finished_at = COALESCE(?, finished_at)
		WHERE id = ? AND next_turn = ? AND outcome = ? AND move_count = ?`

	result, err := that.conn.ExecContext(ctx, query,
		string(board),
		nullString(string(update.NextTurn)),
		string(update.Outcome),
		nullTime(update.FinishedAt),
		update.GameID,
		string(update.ExpectedTurn),
		string(entity.OutcomeInProgress),
		update.ExpectedMoveCount,
	)
	if err != nil {
		return false, fmt.Errorf("can't update game: %w", err)
	}

	return rowsAffected(result)
}

func (that *gameRepository) ClaimSeat(ctx context.Context, gameID, playerID string) (bool, error) {
	query := `UPDATE games SET player_o_id = ?
		WHERE id = ? AND player_o_id IS NULL AND player_x_id != ? AND outcome = ?`

	result, err := that.conn.ExecContext(ctx, query, playerID, gameID, playerID, string(entity.OutcomeInProgress))
	if err != nil {
		return false, fmt.Errorf("can't claim seat: %w", err)
	}

	return rowsAffected(result)
}

func (that *gameRepository) List(ctx context.Context, limit int) ([]*entity.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY created_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list games: %w", err)
	}
	defer rows.Close()

	var games []*entity.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan game: %w", err)
		}
		games = append(games, game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list games: %w", err)
	}

	return games, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*entity.Game, error) {
	var (
		game       entity.Game
		playerO    sql.NullString
		board      string
		nextTurn   sql.NullString
		outcome    string
		createdAt  int64
		finishedAt sql.NullInt64
	)

	err := row.Scan(&game.ID, &game.PlayerX, &playerO, &board, &nextTurn, &outcome, &game.MoveCount, &createdAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal([]byte(board), &game.Board); err != nil {
		return nil, fmt.Errorf("game %s: %w", game.ID, err)
	}

	if game.NextTurn, err = entity.ParseSymbol(nextTurn.String); err != nil {
		return nil, fmt.Errorf("game %s: %w", game.ID, err)
	}

	if game.Outcome, err = entity.ParseOutcome(outcome); err != nil {
		return nil, fmt.Errorf("game %s: %w", game.ID, err)
	}

	game.PlayerO = playerO.String
	game.CreatedAt = time.Unix(0, createdAt).UTC()
	if finishedAt.Valid {
		value := time.Unix(0, finishedAt.Int64).UTC()
		game.FinishedAt = &value
	}

	return &game, nil
}

func rowsAffected(result sql.Result) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("can't read affected rows: %w", err)
	}

	return affected == 1, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: value.UnixNano(), Valid: true}
}
