package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/memory"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/services"
)

func newAdminFixture(t *testing.T) (*memory.LedgerStore, *services.TransactionEngine, *services.AdminService, int64) {
	t.Helper()

	store := memory.NewLedgerStore()
	auth := services.NewAuthService(store, testAuthSettings())
	if err := auth.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	var adminID int64
	err := store.Read(context.Background(), func(ctx context.Context, repos repo_interfaces.Repositories) error {
		admin, err := repos.Users.GetByUsername(ctx, "admin")
		adminID = admin.ID
		return err
	})
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}

	return store, services.NewTransactionEngine(store), services.NewAdminService(store, "admin"), adminID
}

func TestAdminServiceDeleteAccountCascadesTransactions(t *testing.T) {
	ctx := context.Background()
	store, engine, svc, _ := newAdminFixture(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "100")
	other := openAccount(t, engine, ana.ClientID, "5")
	if _, err := engine.Deposit(ctx, account.ID, amount("1"), ""); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	response, err := svc.DeleteAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if response.Data.Cascaded != 2 {
		t.Fatalf("expected 2 cascaded transactions, got %d", response.Data.Cascaded)
	}

	if _, err := engine.History(ctx, account.ID); !errors.Is(err, commons.ErrNotFound) {
		t.Fatalf("expected deleted account to be gone, got %v", err)
	}
	if got := balanceOf(t, store, other.ID); !got.Equal(amount("5")) {
		t.Fatalf("unrelated account changed to %s", got)
	}
	if _, err := svc.DeleteAccount(ctx, account.ID); !errors.Is(err, commons.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestAdminServiceDeleteClientCascades(t *testing.T) {
	ctx := context.Background()
	store, engine, svc, _ := newAdminFixture(t)
	ana := seedClient(t, store, "ana", "1001")
	luis := seedClient(t, store, "luis", "1002")
	openAccount(t, engine, ana.ClientID, "100")
	openAccount(t, engine, ana.ClientID, "0")
	kept := openAccount(t, engine, luis.ClientID, "7")

	response, err := svc.DeleteClient(ctx, ana.ClientID)
	if err != nil {
		t.Fatalf("delete client: %v", err)
	}
	// two accounts, one opening row and the user record
	if response.Data.Cascaded != 4 {
		t.Fatalf("expected 4 cascaded rows, got %d", response.Data.Cascaded)
	}

	err = store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, ana.UserID); !errors.Is(err, commons.ErrNotFound) {
			t.Fatalf("expected user removed, got %v", err)
		}
		accounts, err := repos.Accounts.ListByClient(ctx, ana.ClientID)
		if err != nil {
			return err
		}
		if len(accounts) != 0 {
			t.Fatalf("expected accounts removed, got %d", len(accounts))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read after delete: %v", err)
	}
	if got := balanceOf(t, store, kept.ID); !got.Equal(amount("7")) {
		t.Fatalf("unrelated account changed to %s", got)
	}
}

func TestAdminServiceProtectsBuiltInAdmin(t *testing.T) {
	ctx := context.Background()
	_, _, svc, adminID := newAdminFixture(t)

	if _, err := svc.DeleteUser(ctx, adminID); !errors.Is(err, commons.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestAdminServiceDeleteUserWithClient(t *testing.T) {
	ctx := context.Background()
	store, engine, svc, _ := newAdminFixture(t)
	ana := seedClient(t, store, "ana", "1001")
	openAccount(t, engine, ana.ClientID, "3")

	if _, err := svc.DeleteUser(ctx, ana.UserID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	clients, err := svc.ListClients(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(*clients.Data) != 0 {
		t.Fatalf("expected no clients left, got %d", len(*clients.Data))
	}
}

func TestAdminServiceTransactionMaintenance(t *testing.T) {
	ctx := context.Background()
	store, engine, svc, _ := newAdminFixture(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "100")
	entry := historyOf(t, store, account.ID)[0]

	if _, err := svc.UpdateTransactionDescription(ctx, entry.ID, models.UpdateTransactionRequest{}); !errors.Is(err, commons.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty description, got %v", err)
	}

	updated, err := svc.UpdateTransactionDescription(ctx, entry.ID, models.UpdateTransactionRequest{Description: "  corrected  "})
	if err != nil {
		t.Fatalf("update description: %v", err)
	}
	if updated.Data.Description != "corrected" || updated.Data.AccountNumber != account.AccountNumber {
		t.Fatalf("unexpected updated transaction %+v", updated.Data)
	}

	fetched, err := svc.GetTransaction(ctx, entry.ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if fetched.Data.Description != "corrected" {
		t.Fatalf("expected stored description, got %q", fetched.Data.Description)
	}

	if _, err := svc.DeleteTransaction(ctx, entry.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if got := balanceOf(t, store, account.ID); !got.Equal(amount("100")) {
		t.Fatalf("deleting a transaction changed the balance to %s", got)
	}
	if _, err := svc.GetTransaction(ctx, entry.ID); !errors.Is(err, commons.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminServiceListings(t *testing.T) {
	ctx := context.Background()
	store, engine, svc, _ := newAdminFixture(t)
	ana := seedClient(t, store, "ana", "1001")
	for i := 0; i < 3; i++ {
		openAccount(t, engine, ana.ClientID, "10")
	}

	page, err := svc.ListAccounts(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(*page.Data) != 1 || (*page.Data)[0].OwnerName != "ana" {
		t.Fatalf("unexpected accounts page %+v", *page.Data)
	}

	transactions, err := svc.ListTransactions(ctx, 0, 100)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(*transactions.Data) != 3 {
		t.Fatalf("expected 3 opening rows, got %d", len(*transactions.Data))
	}

	account, err := svc.GetAccount(ctx, (*page.Data)[0].ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Data.ClientID != ana.ClientID {
		t.Fatalf("unexpected account %+v", account.Data)
	}
}
