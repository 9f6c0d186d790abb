package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

//go:generate mockery --name=playerRepoDep --inpackage=false --output=../../mocks/usecase --outpkg=usecase --with-expecter
//go:generate mockery --name=gameRepoDep --inpackage=false --output=../../mocks/usecase --outpkg=usecase --with-expecter
//go:generate mockery --name=moveRepoDep --inpackage=false --output=../../mocks/usecase --outpkg=usecase --with-expecter

type playerRepoDep interface {
	Create(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	GetByUsername(ctx context.Context, username string) (*entity.Player, error)
}

type gameRepoDep interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	// UpdateAtomic reports false when the stored game no longer matches the update's expectations.
	UpdateAtomic(ctx context.Context, update entity.GameUpdate) (bool, error)
	// ClaimSeat reports false when the O seat is taken, the game is over or playerID already plays X.
	ClaimSeat(ctx context.Context, gameID, playerID string) (bool, error)
	List(ctx context.Context, limit int) ([]*entity.Game, error)
}

type moveRepoDep interface {
	Insert(ctx context.Context, move *entity.Move) error
	ListByGame(ctx context.Context, gameID string) ([]entity.Move, error)
}
