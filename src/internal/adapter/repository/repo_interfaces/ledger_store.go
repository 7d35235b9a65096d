package repo_interfaces

import "context"

// Repositories groups the repositories bound to one unit of work.
type Repositories struct {
	Accounts     AccountRepository
	Transactions TransactionRepository
	Clients      ClientRepository
	Users        UserRepository
}

type UnitOfWork func(ctx context.Context, repos Repositories) error

// LedgerStore runs work against the persistent ledger.
//
// Atomic commits every write made by fn or none of them; rows read through
// GetByIDForUpdate stay locked against other writers until it returns.
// Read runs fn without a transaction and must not be used for writes.
type LedgerStore interface {
	Atomic(ctx context.Context, fn UnitOfWork) error
	Read(ctx context.Context, fn UnitOfWork) error
}
