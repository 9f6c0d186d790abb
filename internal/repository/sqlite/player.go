package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
)

type playerRepository struct {
	conn *sql.DB
}

func NewPlayerRepository(conn *sql.DB) repository.PlayerRepository {
	return &playerRepository{
		conn: conn,
	}
}

func (that *playerRepository) Create(ctx context.Context, player *entity.Player) error {
	query := `INSERT INTO players (id, username) VALUES (?, ?)`

	_, err := that.conn.ExecContext(ctx, query, player.ID, player.Username)
	if isUniqueViolation(err) {
		return apperror.ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("can't save player: %w", err)
	}

	return nil
}

func (that *playerRepository) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	return that.findOne(ctx, `SELECT id, username FROM players WHERE id = ?`, id)
}

func (that *playerRepository) GetByUsername(ctx context.Context, username string) (*entity.Player, error) {
	return that.findOne(ctx, `SELECT id, username FROM players WHERE username = ?`, username)
}

func (that *playerRepository) findOne(ctx context.Context, query string, arg string) (*entity.Player, error) {
	var player entity.Player

	err := that.conn.QueryRowContext(ctx, query, arg).Scan(&player.ID, &player.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find player: %w", err)
	}

	return &player, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
