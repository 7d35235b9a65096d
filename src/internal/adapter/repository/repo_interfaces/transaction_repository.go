package repo_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (domain.TransactionEntry, error)
	// ListByAccount returns the account's rows newest first (created_at, then id).
	ListByAccount(ctx context.Context, accountID int64) ([]domain.TransactionEntry, error)
	List(ctx context.Context, offset int, limit int) ([]domain.TransactionEntry, error)
	UpdateDescription(ctx context.Context, id int64, description string) (domain.TransactionEntry, error)
	Delete(ctx context.Context, id int64) error
	DeleteByAccount(ctx context.Context, accountID int64) (int64, error)
}
