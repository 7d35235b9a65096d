// Package memory is an in-process ledger store with the same atomic contract
// as the PostgreSQL store. Every atomic unit works on a private copy of the
// state that replaces the live state only when the unit succeeds.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

var errReadOnly = errors.New("memory ledger store: write attempted in read unit")

type state struct {
	lastUserID        int64
	lastClientID      int64
	lastAccountID     int64
	lastTransactionID int64
	lastTimestamp     time.Time

	users        map[int64]domain.User
	clients      map[int64]domain.Client
	accounts     map[int64]domain.Account
	transactions map[int64]domain.Transaction
}

func newState() *state {
	return &state{
		users:        make(map[int64]domain.User),
		clients:      make(map[int64]domain.Client),
		accounts:     make(map[int64]domain.Account),
		transactions: make(map[int64]domain.Transaction),
	}
}

func (s *state) clone() *state {
	out := *s
	out.users = cloneMap(s.users)
	out.clients = cloneMap(s.clients)
	out.accounts = cloneMap(s.accounts)
	out.transactions = cloneMap(s.transactions)
	return &out
}

func cloneMap[V any](in map[int64]V) map[int64]V {
	out := make(map[int64]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// stamp returns a timestamp that never goes backwards within the store.
func (s *state) stamp(now time.Time) time.Time {
	now = now.UTC()
	if now.Before(s.lastTimestamp) {
		now = s.lastTimestamp
	}
	s.lastTimestamp = now
	return now
}

type LedgerStore struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{state: newState(), now: time.Now}
}

// WithClock replaces the time source used for created/opened timestamps.
func (s *LedgerStore) WithClock(now func() time.Time) *LedgerStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *LedgerStore) Atomic(ctx context.Context, fn repo_interfaces.UnitOfWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if err := fn(ctx, s.repositories(work, true)); err != nil {
		return err
	}

	s.state = work
	return nil
}

func (s *LedgerStore) Read(ctx context.Context, fn repo_interfaces.UnitOfWork) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(ctx, s.repositories(s.state, false))
}

func (s *LedgerStore) repositories(st *state, writable bool) repo_interfaces.Repositories {
	base := unit{st: st, writable: writable, now: s.now}
	return repo_interfaces.Repositories{
		Accounts:     &AccountRepository{unit: base},
		Transactions: &TransactionRepository{unit: base},
		Clients:      &ClientRepository{unit: base},
		Users:        &UserRepository{unit: base},
	}
}

type unit struct {
	st       *state
	writable bool
	now      func() time.Time
}

func (u unit) checkWritable() error {
	if !u.writable {
		return errReadOnly
	}
	return nil
}

func page[T any](items []T, offset int, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortedIDs[V any](in map[int64]V) []int64 {
	ids := make([]int64, 0, len(in))
	for id := range in {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
