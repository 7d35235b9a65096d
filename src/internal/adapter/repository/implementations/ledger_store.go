package implementations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
)

// LedgerStore runs units of work against PostgreSQL. Atomic units use one
// READ COMMITTED transaction; writers serialise on SELECT ... FOR UPDATE.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func repositoriesFor(q querier) repo_interfaces.Repositories {
	return repo_interfaces.Repositories{
		Accounts:     NewAccountRepository(q),
		Transactions: NewTransactionRepository(q),
		Clients:      NewClientRepository(q),
		Users:        NewUserRepository(q),
	}
}

func (s *LedgerStore) Atomic(ctx context.Context, fn repo_interfaces.UnitOfWork) (err error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.Error("ledger store begin tx failed", err, nil)
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, repositoriesFor(tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger store commit tx failed", err, nil)
		return fmt.Errorf("commit ledger transaction: %w", err)
	}

	return nil
}

func (s *LedgerStore) Read(ctx context.Context, fn repo_interfaces.UnitOfWork) error {
	return fn(ctx, repositoriesFor(s.db))
}
