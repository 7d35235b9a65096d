package services_test

import (
	"context"
	"testing"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/memory"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func seedClient(t *testing.T, store *memory.LedgerStore, username string, identification string) domain.Principal {
	t.Helper()

	var principal domain.Principal
	err := store.Atomic(context.Background(), func(ctx context.Context, repos repo_interfaces.Repositories) error {
		user, err := repos.Users.Create(ctx, domain.User{
			Username: username,
			Role:     domain.RoleClient,
			FullName: username,
			Active:   true,
		})
		if err != nil {
			return err
		}
		client, err := repos.Clients.Create(ctx, domain.Client{
			UserID:               user.ID,
			IdentificationNumber: identification,
			IdentificationType:   domain.DefaultIdentificationType,
			FullName:             username,
		})
		if err != nil {
			return err
		}
		principal = domain.Principal{UserID: user.ID, ClientID: client.ID, Username: username, Role: domain.RoleClient}
		return nil
	})
	if err != nil {
		t.Fatalf("seed client %s: %v", username, err)
	}
	return principal
}

func openAccount(t *testing.T, engine *services.TransactionEngine, clientID int64, balance string) domain.Account {
	t.Helper()

	account, err := engine.OpenAccount(context.Background(), clientID, domain.AccountKindSavings, decimal.RequireFromString(balance))
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	return account
}

func balanceOf(t *testing.T, store *memory.LedgerStore, accountID int64) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := store.Read(context.Background(), func(ctx context.Context, repos repo_interfaces.Repositories) error {
		account, err := repos.Accounts.GetByID(ctx, accountID)
		balance = account.Balance
		return err
	})
	if err != nil {
		t.Fatalf("read account %d: %v", accountID, err)
	}
	return balance
}

func historyOf(t *testing.T, store *memory.LedgerStore, accountID int64) []domain.TransactionEntry {
	t.Helper()

	var entries []domain.TransactionEntry
	err := store.Read(context.Background(), func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		entries, err = repos.Transactions.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		t.Fatalf("read history %d: %v", accountID, err)
	}
	return entries
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
