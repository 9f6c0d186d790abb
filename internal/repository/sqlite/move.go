package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
)

type moveRepository struct {
	conn *sql.DB
}

func NewMoveRepository(conn *sql.DB) repository.MoveRepository {
	return &moveRepository{
		conn: conn,
	}
}

func (that *moveRepository) Insert(ctx context.Context, move *entity.Move) error {
	query := `INSERT INTO moves (id, game_id, player_id, x, y, symbol, sequence, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		move.ID, move.GameID, move.PlayerID, move.X, move.Y, string(move.Symbol), move.Sequence, move.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("can't save move: %w", err)
	}

	return nil
}

func (that *moveRepository) ListByGame(ctx context.Context, gameID string) ([]entity.Move, error) {
	query := `SELECT id, game_id, player_id, x, y, symbol, sequence, timestamp
		FROM moves WHERE game_id = ? ORDER BY sequence ASC, timestamp ASC`

	rows, err := that.conn.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't list moves: %w", err)
	}
	defer rows.Close()

	moves := []entity.Move{}
	for rows.Next() {
		var (
			move      entity.Move
			symbol    string
			timestamp int64
		)

		if err = rows.Scan(&move.ID, &move.GameID, &move.PlayerID, &move.X, &move.Y, &symbol, &move.Sequence, &timestamp); err != nil {
			return nil, fmt.Errorf("can't scan move: %w", err)
		}

		if move.Symbol, err = entity.ParseSymbol(symbol); err != nil {
			return nil, fmt.Errorf("move %s: %w", move.ID, err)
		}
		move.Timestamp = time.Unix(0, timestamp).UTC()

		moves = append(moves, move)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list moves: %w", err)
	}

	return moves, nil
}
