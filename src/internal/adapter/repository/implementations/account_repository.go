package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
	"github.com/shopspring/decimal"
)

const maxAccountNumberAttempts = 20

type AccountRepository struct {
	db querier
}

func NewAccountRepository(db querier) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts the account unless its number is already held, in which
// case commons.ErrAccountNumberTaken is returned and nothing is written.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"clientId":      account.ClientID,
		"accountNumber": account.AccountNumber,
		"kind":          account.Kind,
	})

	const query = `
INSERT INTO accounts (
	client_id,
	account_number,
	kind,
	balance,
	active
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (account_number) DO NOTHING
RETURNING id, opened_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.ClientID,
		account.AccountNumber,
		account.Kind,
		account.Balance,
		account.Active,
	).Scan(&account.ID, &account.OpenedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository account number taken", logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return domain.Account{}, commons.ErrAccountNumberTaken
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"clientId":      account.ClientID,
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

const selectAccount = `
SELECT id, client_id, account_number, kind, balance, active, opened_at
FROM accounts`

func scanAccount(row interface{ Scan(dest ...any) error }) (domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.ClientID,
		&account.AccountNumber,
		&account.Kind,
		&account.Balance,
		&account.Active,
		&account.OpenedAt,
	)
	return account, err
}

func (r *AccountRepository) getOne(ctx context.Context, op string, query string, arg any) (domain.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"lookup": op,
				"value":  arg,
			})
			return domain.Account{}, fmt.Errorf("account %v: %w", arg, commons.ErrNotFound)
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"lookup": op,
			"value":  arg,
		})
		return domain.Account{}, fmt.Errorf("get account by %s: %w", op, err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	return r.getOne(ctx, "id", selectAccount+`
WHERE id = $1`, id)
}

func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	return r.getOne(ctx, "id", selectAccount+`
WHERE id = $1
FOR UPDATE`, id)
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	return r.getOne(ctx, "account number", selectAccount+`
WHERE account_number = $1`, accountNumber)
}

func (r *AccountRepository) GenerateUniqueAccountNumber(ctx context.Context) (string, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`

	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		candidate, err := commons.RandomAccountNumber()
		if err != nil {
			return "", err
		}

		var exists bool
		if err := r.db.QueryRowContext(ctx, query, candidate).Scan(&exists); err != nil {
			logger.Error("account repository account number check failed", err, nil)
			return "", fmt.Errorf("check account number: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free account number after %d attempts", maxAccountNumberAttempts)
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	logger.Info("account repository update balance", logger.Fields{
		"accountId": id,
		"balance":   balance,
	})

	const query = `
UPDATE accounts
SET balance = $2::numeric
WHERE id = $1`

	rows, err := execRequiredRows(ctx, r.db, query, id, balance)
	if err != nil {
		logger.Error("account repository update balance failed", err, logger.Fields{
			"accountId": id,
		})
		return fmt.Errorf("update account balance: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %d: %w", id, commons.ErrNotFound)
	}

	return nil
}

func (r *AccountRepository) SetActive(ctx context.Context, id int64, active bool) error {
	logger.Info("account repository set active", logger.Fields{
		"accountId": id,
		"active":    active,
	})

	rows, err := execRequiredRows(ctx, r.db, `UPDATE accounts SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		logger.Error("account repository set active failed", err, logger.Fields{
			"accountId": id,
		})
		return fmt.Errorf("set account active: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %d: %w", id, commons.ErrNotFound)
	}

	return nil
}

const selectAccountWithOwner = `
SELECT a.id, a.client_id, a.account_number, a.kind, a.balance, a.active, a.opened_at, c.full_name
FROM accounts a
JOIN clients c ON c.id = a.client_id`

func (r *AccountRepository) listWithOwner(ctx context.Context, query string, args ...any) ([]domain.AccountWithOwner, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("account repository list failed", err, nil)
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AccountWithOwner, 0)
	for rows.Next() {
		var item domain.AccountWithOwner
		if err := rows.Scan(
			&item.ID,
			&item.ClientID,
			&item.AccountNumber,
			&item.Kind,
			&item.Balance,
			&item.Active,
			&item.OpenedAt,
			&item.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return out, nil
}

func (r *AccountRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.AccountWithOwner, error) {
	return r.listWithOwner(ctx, selectAccountWithOwner+`
WHERE a.client_id = $1
ORDER BY a.id`, clientID)
}

func (r *AccountRepository) List(ctx context.Context, offset int, limit int) ([]domain.AccountWithOwner, error) {
	offset, limit = pageBounds(offset, limit)
	return r.listWithOwner(ctx, selectAccountWithOwner+`
ORDER BY a.id
OFFSET $1 LIMIT $2`, offset, limit)
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	logger.Info("account repository delete", logger.Fields{"accountId": id})

	rows, err := execRequiredRows(ctx, r.db, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		logger.Error("account repository delete failed", err, logger.Fields{"accountId": id})
		return fmt.Errorf("delete account: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account %d: %w", id, commons.ErrNotFound)
	}

	return nil
}
