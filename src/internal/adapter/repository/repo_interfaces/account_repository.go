package repo_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	GetByIDForUpdate(ctx context.Context, id int64) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	GenerateUniqueAccountNumber(ctx context.Context) (string, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListByClient(ctx context.Context, clientID int64) ([]domain.AccountWithOwner, error)
	List(ctx context.Context, offset int, limit int) ([]domain.AccountWithOwner, error)
	Delete(ctx context.Context, id int64) error
}
