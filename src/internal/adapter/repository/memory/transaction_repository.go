package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type TransactionRepository struct {
	unit
}

func (r *TransactionRepository) Create(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	if err := r.checkWritable(); err != nil {
		return domain.Transaction{}, err
	}
	if _, ok := r.st.accounts[transaction.AccountID]; !ok {
		return domain.Transaction{}, fmt.Errorf("create transaction: account %d does not exist", transaction.AccountID)
	}

	r.st.lastTransactionID++
	transaction.ID = r.st.lastTransactionID
	transaction.CreatedAt = r.st.stamp(r.now())
	r.st.transactions[transaction.ID] = transaction
	return transaction, nil
}

func (r *TransactionRepository) entry(tx domain.Transaction) domain.TransactionEntry {
	return domain.TransactionEntry{
		Transaction:   tx,
		AccountNumber: r.st.accounts[tx.AccountID].AccountNumber,
	}
}

func (r *TransactionRepository) GetByID(_ context.Context, id int64) (domain.TransactionEntry, error) {
	tx, ok := r.st.transactions[id]
	if !ok {
		return domain.TransactionEntry{}, fmt.Errorf("transaction %d: %w", id, commons.ErrNotFound)
	}
	return r.entry(tx), nil
}

func (r *TransactionRepository) newestFirst(match func(domain.Transaction) bool) []domain.TransactionEntry {
	out := make([]domain.TransactionEntry, 0)
	for _, tx := range r.st.transactions {
		if match(tx) {
			out = append(out, r.entry(tx))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *TransactionRepository) ListByAccount(_ context.Context, accountID int64) ([]domain.TransactionEntry, error) {
	return r.newestFirst(func(tx domain.Transaction) bool { return tx.AccountID == accountID }), nil
}

func (r *TransactionRepository) List(_ context.Context, offset int, limit int) ([]domain.TransactionEntry, error) {
	all := r.newestFirst(func(domain.Transaction) bool { return true })
	return page(all, offset, limit), nil
}

func (r *TransactionRepository) UpdateDescription(ctx context.Context, id int64, description string) (domain.TransactionEntry, error) {
	if err := r.checkWritable(); err != nil {
		return domain.TransactionEntry{}, err
	}
	tx, ok := r.st.transactions[id]
	if !ok {
		return domain.TransactionEntry{}, fmt.Errorf("transaction %d: %w", id, commons.ErrNotFound)
	}
	tx.Description = description
	r.st.transactions[id] = tx
	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Delete(_ context.Context, id int64) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if _, ok := r.st.transactions[id]; !ok {
		return fmt.Errorf("transaction %d: %w", id, commons.ErrNotFound)
	}
	delete(r.st.transactions, id)
	return nil
}

func (r *TransactionRepository) DeleteByAccount(_ context.Context, accountID int64) (int64, error) {
	if err := r.checkWritable(); err != nil {
		return 0, err
	}
	var deleted int64
	for id, tx := range r.st.transactions {
		if tx.AccountID == accountID {
			delete(r.st.transactions, id)
			deleted++
		}
	}
	return deleted, nil
}
