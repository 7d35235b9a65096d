package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
)

type TransactionRepository struct {
	db querier
}

func NewTransactionRepository(db querier) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction repository create", logger.Fields{
		"accountId": transaction.AccountID,
		"kind":      transaction.Kind,
		"amount":    transaction.Amount,
	})

	const query = `
INSERT INTO transactions (
	account_id,
	kind,
	amount,
	description,
	balance_before,
	balance_after
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transaction.AccountID,
		transaction.Kind,
		transaction.Amount,
		transaction.Description,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
	).Scan(&transaction.ID, &transaction.CreatedAt); err != nil {
		logger.Error("transaction repository create failed", err, logger.Fields{
			"accountId": transaction.AccountID,
			"kind":      transaction.Kind,
		})
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	logger.Info("transaction repository create success", logger.Fields{
		"transactionId": transaction.ID,
		"accountId":     transaction.AccountID,
	})

	return transaction, nil
}

const selectTransactionEntry = `
SELECT t.id, t.account_id, t.kind, t.amount, t.description, t.created_at,
       t.balance_before, t.balance_after, a.account_number
FROM transactions t
JOIN accounts a ON a.id = t.account_id`

func scanTransactionEntry(row interface{ Scan(dest ...any) error }) (domain.TransactionEntry, error) {
	var entry domain.TransactionEntry
	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Kind,
		&entry.Amount,
		&entry.Description,
		&entry.CreatedAt,
		&entry.BalanceBefore,
		&entry.BalanceAfter,
		&entry.AccountNumber,
	)
	return entry, err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (domain.TransactionEntry, error) {
	entry, err := scanTransactionEntry(r.db.QueryRowContext(ctx, selectTransactionEntry+`
WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("transaction repository record not found", logger.Fields{
				"transactionId": id,
			})
			return domain.TransactionEntry{}, fmt.Errorf("transaction %d: %w", id, commons.ErrNotFound)
		}
		logger.Error("transaction repository get failed", err, logger.Fields{
			"transactionId": id,
		})
		return domain.TransactionEntry{}, fmt.Errorf("get transaction: %w", err)
	}

	return entry, nil
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.TransactionEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("transaction repository list failed", err, nil)
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TransactionEntry, 0)
	for rows.Next() {
		entry, err := scanTransactionEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.TransactionEntry, error) {
	return r.list(ctx, selectTransactionEntry+`
WHERE t.account_id = $1
ORDER BY t.created_at DESC, t.id DESC`, accountID)
}

func (r *TransactionRepository) List(ctx context.Context, offset int, limit int) ([]domain.TransactionEntry, error) {
	offset, limit = pageBounds(offset, limit)
	return r.list(ctx, selectTransactionEntry+`
ORDER BY t.created_at DESC, t.id DESC
OFFSET $1 LIMIT $2`, offset, limit)
}

func (r *TransactionRepository) UpdateDescription(ctx context.Context, id int64, description string) (domain.TransactionEntry, error) {
	logger.Info("transaction repository update description", logger.Fields{
		"transactionId": id,
	})

	rows, err := execRequiredRows(ctx, r.db, `UPDATE transactions SET description = $2 WHERE id = $1`, id, description)
	if err != nil {
		logger.Error("transaction repository update description failed", err, logger.Fields{
			"transactionId": id,
		})
		return domain.TransactionEntry{}, fmt.Errorf("update transaction description: %w", err)
	}
	if rows == 0 {
		return domain.TransactionEntry{}, fmt.Errorf("transaction %d: %w", id, commons.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	logger.Info("transaction repository delete", logger.Fields{"transactionId": id})

	rows, err := execRequiredRows(ctx, r.db, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		logger.Error("transaction repository delete failed", err, logger.Fields{"transactionId": id})
		return fmt.Errorf("delete transaction: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %d: %w", id, commons.ErrNotFound)
	}

	return nil
}

func (r *TransactionRepository) DeleteByAccount(ctx context.Context, accountID int64) (int64, error) {
	logger.Info("transaction repository delete by account", logger.Fields{"accountId": accountID})

	rows, err := execRequiredRows(ctx, r.db, `DELETE FROM transactions WHERE account_id = $1`, accountID)
	if err != nil {
		logger.Error("transaction repository delete by account failed", err, logger.Fields{"accountId": accountID})
		return 0, fmt.Errorf("delete account transactions: %w", err)
	}

	return rows, nil
}
