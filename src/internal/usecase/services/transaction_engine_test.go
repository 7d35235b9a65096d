package services_test

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/memory"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func newEngine(t *testing.T) (*memory.LedgerStore, *services.TransactionEngine) {
	t.Helper()
	store := memory.NewLedgerStore()
	return store, services.NewTransactionEngine(store)
}

func TestTransactionEngineDepositWithdrawTransferScenario(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	luis := seedClient(t, store, "luis", "1002")

	source := openAccount(t, engine, ana.ClientID, "1000000")
	destination := openAccount(t, engine, luis.ClientID, "0")

	updated, err := engine.Deposit(ctx, source.ID, amount("500000"), "")
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !updated.Balance.Equal(amount("1500000")) {
		t.Fatalf("expected balance 1500000 after deposit, got %s", updated.Balance)
	}

	history, err := engine.History(ctx, source.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].Kind != domain.TransactionKindDeposit || !history[0].Amount.Decimal.Equal(amount("500000")) {
		t.Fatalf("expected newest entry to be the 500000 deposit, got %+v", history[0])
	}
	if history[1].Description != "account opening" {
		t.Fatalf("expected oldest entry to be the opening deposit, got %q", history[1].Description)
	}

	_, err = engine.Withdraw(ctx, source.ID, amount("2000000"), "")
	if !errors.Is(err, commons.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if got := balanceOf(t, store, source.ID); !got.Equal(amount("1500000")) {
		t.Fatalf("expected balance to stay 1500000, got %s", got)
	}
	if got := len(historyOf(t, store, source.ID)); got != 2 {
		t.Fatalf("expected failed withdrawal to add no history, got %d entries", got)
	}

	result, err := engine.Transfer(ctx, domain.TransferCommand{
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		Amount:               amount("500000"),
		Description:          "rent",
		RequestingClientID:   ana.ClientID,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !result.SourceBalance.Equal(amount("1000000")) || !result.DestinationBalance.Equal(amount("500000")) {
		t.Fatalf("unexpected transfer balances: %+v", result)
	}

	sourceLeg := historyOf(t, store, source.ID)[0]
	if sourceLeg.Kind != domain.TransactionKindWithdrawal || !strings.Contains(sourceLeg.Description, destination.AccountNumber) {
		t.Fatalf("expected withdrawal leg naming %s, got %+v", destination.AccountNumber, sourceLeg)
	}
	if !sourceLeg.BalanceBefore.Equal(amount("1500000")) || !sourceLeg.BalanceAfter.Equal(amount("1000000")) {
		t.Fatalf("unexpected source leg balances: %s -> %s", sourceLeg.BalanceBefore, sourceLeg.BalanceAfter)
	}

	destinationHistory := historyOf(t, store, destination.ID)
	if len(destinationHistory) != 1 {
		t.Fatalf("expected one destination entry, got %d", len(destinationHistory))
	}
	if destinationHistory[0].Kind != domain.TransactionKindDeposit || !strings.Contains(destinationHistory[0].Description, source.AccountNumber) {
		t.Fatalf("expected deposit leg naming %s, got %+v", source.AccountNumber, destinationHistory[0])
	}
	if !strings.HasSuffix(destinationHistory[0].Description, " - rent") {
		t.Fatalf("expected caller description on the leg, got %q", destinationHistory[0].Description)
	}
}

func TestTransactionEngineConcurrentWithdrawalsOnlyOneSucceeds(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "1000000")

	var successes, insufficient atomic.Int32
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := engine.Withdraw(ctx, account.ID, amount("600000"), "")
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, commons.ErrInsufficientFunds):
				insufficient.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected withdrawal error: %v", err)
	}

	if successes.Load() != 1 || insufficient.Load() != 1 {
		t.Fatalf("expected one success and one insufficient funds, got %d and %d", successes.Load(), insufficient.Load())
	}
	if got := balanceOf(t, store, account.ID); !got.Equal(amount("400000")) {
		t.Fatalf("expected final balance 400000, got %s", got)
	}
}

func TestTransactionEngineBalanceMatchesLedger(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "250.00")

	rng := rand.New(rand.NewSource(7))
	expected := amount("250.00")
	for i := 0; i < 200; i++ {
		value := decimal.New(int64(rng.Intn(50000)+1), -2)
		if rng.Intn(2) == 0 {
			if _, err := engine.Deposit(ctx, account.ID, value, ""); err != nil {
				t.Fatalf("deposit %s: %v", value, err)
			}
			expected = expected.Add(value)
			continue
		}

		_, err := engine.Withdraw(ctx, account.ID, value, "")
		if value.GreaterThan(expected) {
			if !errors.Is(err, commons.ErrInsufficientFunds) {
				t.Fatalf("withdraw %s over %s: expected insufficient funds, got %v", value, expected, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("withdraw %s: %v", value, err)
		}
		expected = expected.Sub(value)
	}

	if got := balanceOf(t, store, account.ID); !got.Equal(expected) {
		t.Fatalf("expected balance %s, got %s", expected, got)
	}

	history := historyOf(t, store, account.ID)
	running := decimal.Zero
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		if !entry.BalanceBefore.Equal(running) {
			t.Fatalf("entry %d starts at %s, previous ended at %s", entry.ID, entry.BalanceBefore, running)
		}
		delta := entry.Amount.Decimal
		if entry.Kind == domain.TransactionKindWithdrawal {
			delta = delta.Neg()
		}
		if !entry.BalanceBefore.Add(delta).Equal(entry.BalanceAfter) {
			t.Fatalf("entry %d: %s %s does not reach %s", entry.ID, entry.BalanceBefore, delta, entry.BalanceAfter)
		}
		if entry.BalanceAfter.IsNegative() {
			t.Fatalf("entry %d left a negative balance", entry.ID)
		}
		running = entry.BalanceAfter
	}
	if !running.Equal(expected) {
		t.Fatalf("ledger ends at %s, expected %s", running, expected)
	}
}

func TestTransactionEngineConcurrentTransfersConserveMoney(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")

	accounts := []domain.Account{
		openAccount(t, engine, ana.ClientID, "1000"),
		openAccount(t, engine, ana.ClientID, "500"),
		openAccount(t, engine, ana.ClientID, "0"),
	}
	total := amount("1500")

	var g errgroup.Group
	for worker := 0; worker < 4; worker++ {
		rng := rand.New(rand.NewSource(int64(worker)))
		g.Go(func() error {
			for i := 0; i < 25; i++ {
				from := rng.Intn(len(accounts))
				to := (from + 1 + rng.Intn(len(accounts)-1)) % len(accounts)
				_, err := engine.Transfer(ctx, domain.TransferCommand{
					SourceAccountID:      accounts[from].ID,
					DestinationAccountID: accounts[to].ID,
					Amount:               decimal.New(int64(rng.Intn(40000)+1), -2),
					RequestingClientID:   ana.ClientID,
				})
				if err != nil && !errors.Is(err, commons.ErrInsufficientFunds) {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	sum := decimal.Zero
	for _, account := range accounts {
		balance := balanceOf(t, store, account.ID)
		if balance.IsNegative() {
			t.Fatalf("account %s went negative: %s", account.AccountNumber, balance)
		}
		sum = sum.Add(balance)
	}
	if !sum.Equal(total) {
		t.Fatalf("expected total %s to be conserved, got %s", total, sum)
	}
}

func TestTransactionEngineTransferRejectionsLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	luis := seedClient(t, store, "luis", "1002")

	source := openAccount(t, engine, ana.ClientID, "100")
	destination := openAccount(t, engine, luis.ClientID, "50")
	closed := openAccount(t, engine, luis.ClientID, "10")
	if _, err := engine.DeactivateAccount(ctx, closed.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	tests := []struct {
		name string
		cmd  domain.TransferCommand
		want error
	}{
		{
			name: "same account",
			cmd:  domain.TransferCommand{SourceAccountID: source.ID, DestinationAccountID: source.ID, Amount: amount("1"), RequestingClientID: ana.ClientID},
			want: commons.ErrInvalidArgument,
		},
		{
			name: "zero amount",
			cmd:  domain.TransferCommand{SourceAccountID: source.ID, DestinationAccountID: destination.ID, Amount: decimal.Zero, RequestingClientID: ana.ClientID},
			want: commons.ErrInvalidArgument,
		},
		{
			name: "negative amount",
			cmd:  domain.TransferCommand{SourceAccountID: source.ID, DestinationAccountID: destination.ID, Amount: amount("-5"), RequestingClientID: ana.ClientID},
			want: commons.ErrInvalidArgument,
		},
		{
			name: "sub cent amount",
			cmd:  domain.TransferCommand{SourceAccountID: source.ID, DestinationAccountID: destination.ID, Amount: amount("0.001"), RequestingClientID: ana.ClientID},
			want: commons.ErrInvalidArgument,
		},
		{
			name: "missing destination",
			cmd:  domain.TransferCommand{SourceAccountID: source.ID, DestinationAccountID: 999, Amount: amount("1"), RequestingClientID: ana.ClientID},
			want: commons.ErrNotFound,
		},
		{
			name: "foreign source",
			cmd:  domain.TransferCommand{SourceAccountID: destination.ID, DestinationAccountID: source.ID, Amount: amount("1"), RequestingClientID: ana.ClientID},
			want: commons.ErrPermissionDenied,
		},
		{
			name: "inactive destination",
			cmd:  domain.TransferCommand{SourceAccountID: source.ID, DestinationAccountID: closed.ID, Amount: amount("1"), RequestingClientID: ana.ClientID},
			want: commons.ErrInvalidState,
		},
		{
			name: "insufficient funds",
			cmd:  domain.TransferCommand{SourceAccountID: source.ID, DestinationAccountID: destination.ID, Amount: amount("100.01"), RequestingClientID: ana.ClientID},
			want: commons.ErrInsufficientFunds,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Transfer(ctx, tc.cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}

			if got := balanceOf(t, store, source.ID); !got.Equal(amount("100")) {
				t.Fatalf("source balance changed to %s", got)
			}
			if got := balanceOf(t, store, destination.ID); !got.Equal(amount("50")) {
				t.Fatalf("destination balance changed to %s", got)
			}
			if got := len(historyOf(t, store, source.ID)); got != 1 {
				t.Fatalf("source history grew to %d entries", got)
			}
			if got := len(historyOf(t, store, destination.ID)); got != 1 {
				t.Fatalf("destination history grew to %d entries", got)
			}
		})
	}
}

func TestTransactionEngineMovementRejections(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "100")
	closed := openAccount(t, engine, ana.ClientID, "100")
	if _, err := engine.DeactivateAccount(ctx, closed.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := engine.Deposit(ctx, closed.ID, amount("10"), ""); !errors.Is(err, commons.ErrInvalidState) {
		t.Fatalf("expected invalid state for inactive deposit, got %v", err)
	}
	if _, err := engine.Withdraw(ctx, closed.ID, amount("10"), ""); !errors.Is(err, commons.ErrInvalidState) {
		t.Fatalf("expected invalid state for inactive withdrawal, got %v", err)
	}
	if _, err := engine.Deposit(ctx, 999, amount("10"), ""); !errors.Is(err, commons.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := engine.Deposit(ctx, account.ID, decimal.Zero, ""); !errors.Is(err, commons.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for zero deposit, got %v", err)
	}
	if _, err := engine.Withdraw(ctx, account.ID, amount("12.345"), ""); !errors.Is(err, commons.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for sub cent withdrawal, got %v", err)
	}

	if got := balanceOf(t, store, closed.ID); !got.Equal(amount("100")) {
		t.Fatalf("inactive account balance changed to %s", got)
	}
	if got := balanceOf(t, store, account.ID); !got.Equal(amount("100")) {
		t.Fatalf("account balance changed to %s", got)
	}
}

func TestTransactionEngineWithdrawWholeBalance(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "75.50")

	updated, err := engine.Withdraw(ctx, account.ID, amount("75.50"), "cash")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !updated.Balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", updated.Balance)
	}
	if got := historyOf(t, store, account.ID)[0].Description; got != "cash" {
		t.Fatalf("expected caller description, got %q", got)
	}
}

func TestTransactionEngineOpenAccount(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")

	if _, err := engine.OpenAccount(ctx, ana.ClientID, domain.AccountKind("PIGGY"), decimal.Zero); !errors.Is(err, commons.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for unknown kind, got %v", err)
	}
	if _, err := engine.OpenAccount(ctx, ana.ClientID, domain.AccountKindChecking, amount("-1")); !errors.Is(err, commons.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for negative balance, got %v", err)
	}
	if _, err := engine.OpenAccount(ctx, 999, domain.AccountKindChecking, decimal.Zero); !errors.Is(err, commons.ErrNotFound) {
		t.Fatalf("expected not found for unknown client, got %v", err)
	}

	seen := make(map[string]struct{})
	for _, kind := range domain.AccountKinds() {
		account, err := engine.OpenAccount(ctx, ana.ClientID, kind, decimal.Zero)
		if err != nil {
			t.Fatalf("open %s: %v", kind, err)
		}
		if !commons.IsAccountNumber(account.AccountNumber) {
			t.Fatalf("expected 10 digit account number, got %q", account.AccountNumber)
		}
		if _, dup := seen[account.AccountNumber]; dup {
			t.Fatalf("account number %s issued twice", account.AccountNumber)
		}
		seen[account.AccountNumber] = struct{}{}

		if !account.Active || !account.Balance.IsZero() || account.Kind != kind {
			t.Fatalf("unexpected opened account %+v", account)
		}
		if got := len(historyOf(t, store, account.ID)); got != 0 {
			t.Fatalf("expected no opening row for zero balance, got %d", got)
		}
	}
}

func TestTransactionEngineQueryBalanceRecordsAudit(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "300")

	got, err := engine.QueryBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("query balance: %v", err)
	}
	if !got.Balance.Equal(amount("300")) {
		t.Fatalf("expected 300, got %s", got.Balance)
	}

	latest := historyOf(t, store, account.ID)[0]
	if latest.Kind != domain.TransactionKindQuery {
		t.Fatalf("expected QUERY row, got %s", latest.Kind)
	}
	if latest.Amount.Valid {
		t.Fatalf("expected QUERY row without amount, got %s", latest.Amount.Decimal)
	}
	if !latest.BalanceBefore.Equal(latest.BalanceAfter) {
		t.Fatalf("QUERY row moved balance %s -> %s", latest.BalanceBefore, latest.BalanceAfter)
	}
	if got := balanceOf(t, store, account.ID); !got.Equal(amount("300")) {
		t.Fatalf("query changed balance to %s", got)
	}
}

func TestTransactionEngineHistory(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "10")

	if _, err := engine.History(ctx, 999); !errors.Is(err, commons.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	for _, value := range []string{"1", "2", "3"} {
		if _, err := engine.Deposit(ctx, account.ID, amount(value), ""); err != nil {
			t.Fatalf("deposit: %v", err)
		}
	}

	first, err := engine.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	second, err := engine.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected repeated history reads to match")
	}

	if len(first) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i].CreatedAt.After(first[i-1].CreatedAt) {
			t.Fatalf("entries out of order at %d", i)
		}
	}
	if !first[0].Amount.Decimal.Equal(amount("3")) {
		t.Fatalf("expected newest deposit first, got %s", first[0].Amount.Decimal)
	}
	for _, entry := range first {
		if entry.AccountNumber != account.AccountNumber {
			t.Fatalf("expected entries to carry account number %s, got %s", account.AccountNumber, entry.AccountNumber)
		}
	}
}

func TestTransactionEngineDeactivateAccount(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	account := openAccount(t, engine, ana.ClientID, "10")

	deactivated, err := engine.DeactivateAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.Active || deactivated.Status() != domain.AccountStatusInactive {
		t.Fatalf("expected inactive account, got %+v", deactivated)
	}

	if _, err := engine.DeactivateAccount(ctx, account.ID); !errors.Is(err, commons.ErrInvalidState) {
		t.Fatalf("expected invalid state on second deactivation, got %v", err)
	}
	if _, err := engine.QueryBalance(ctx, account.ID); !errors.Is(err, commons.ErrInvalidState) {
		t.Fatalf("expected invalid state on inactive query, got %v", err)
	}

	history, err := engine.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("history of inactive account: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected opening row only, got %d", len(history))
	}
}
