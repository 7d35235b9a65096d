package memory

import (
	"context"
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/shopspring/decimal"
)

const maxAccountNumberAttempts = 20

type AccountRepository struct {
	unit
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	if err := r.checkWritable(); err != nil {
		return domain.Account{}, err
	}
	for _, existing := range r.st.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.Account{}, commons.ErrAccountNumberTaken
		}
	}
	if _, ok := r.st.clients[account.ClientID]; !ok {
		return domain.Account{}, fmt.Errorf("create account: client %d does not exist", account.ClientID)
	}

	r.st.lastAccountID++
	account.ID = r.st.lastAccountID
	account.OpenedAt = r.st.stamp(r.now())
	r.st.accounts[account.ID] = account
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (domain.Account, error) {
	account, ok := r.st.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("account %d: %w", id, commons.ErrNotFound)
	}
	return account, nil
}

// GetByIDForUpdate needs no row lock: the store lock is held for the unit.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	for _, account := range r.st.accounts {
		if account.AccountNumber == accountNumber {
			return account, nil
		}
	}
	return domain.Account{}, fmt.Errorf("account %s: %w", accountNumber, commons.ErrNotFound)
}

func (r *AccountRepository) GenerateUniqueAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		candidate, err := commons.RandomAccountNumber()
		if err != nil {
			return "", err
		}
		if _, err := r.GetByAccountNumber(ctx, candidate); err != nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free account number after %d attempts", maxAccountNumberAttempts)
}

func (r *AccountRepository) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	account, ok := r.st.accounts[id]
	if !ok {
		return fmt.Errorf("account %d: %w", id, commons.ErrNotFound)
	}
	if balance.IsNegative() {
		return fmt.Errorf("update account balance: balance %s violates non-negative constraint", balance)
	}
	account.Balance = balance
	r.st.accounts[id] = account
	return nil
}

func (r *AccountRepository) SetActive(_ context.Context, id int64, active bool) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	account, ok := r.st.accounts[id]
	if !ok {
		return fmt.Errorf("account %d: %w", id, commons.ErrNotFound)
	}
	account.Active = active
	r.st.accounts[id] = account
	return nil
}

func (r *AccountRepository) withOwner(account domain.Account) domain.AccountWithOwner {
	return domain.AccountWithOwner{
		Account:   account,
		OwnerName: r.st.clients[account.ClientID].FullName,
	}
}

func (r *AccountRepository) ListByClient(_ context.Context, clientID int64) ([]domain.AccountWithOwner, error) {
	out := make([]domain.AccountWithOwner, 0)
	for _, id := range sortedIDs(r.st.accounts) {
		if account := r.st.accounts[id]; account.ClientID == clientID {
			out = append(out, r.withOwner(account))
		}
	}
	return out, nil
}

func (r *AccountRepository) List(_ context.Context, offset int, limit int) ([]domain.AccountWithOwner, error) {
	all := make([]domain.AccountWithOwner, 0, len(r.st.accounts))
	for _, id := range sortedIDs(r.st.accounts) {
		all = append(all, r.withOwner(r.st.accounts[id]))
	}
	return page(all, offset, limit), nil
}

func (r *AccountRepository) Delete(_ context.Context, id int64) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if _, ok := r.st.accounts[id]; !ok {
		return fmt.Errorf("account %d: %w", id, commons.ErrNotFound)
	}
	for _, tx := range r.st.transactions {
		if tx.AccountID == id {
			return fmt.Errorf("delete account %d: transactions still reference it", id)
		}
	}
	delete(r.st.accounts, id)
	return nil
}
