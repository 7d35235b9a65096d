package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
	"github.com/shopspring/decimal"
)

const (
	openingDescription    = "account opening"
	depositDescription    = "deposit"
	withdrawalDescription = "withdrawal"
	queryDescription      = "balance inquiry"

	maxAccountOpenAttempts = 5
)

// Balances are stored as NUMERIC(15,2).
var maxBalance = decimal.New(1, 13).Sub(decimal.New(1, -2))

// TransactionEngine executes every balance-affecting operation. Each call is
// one atomic unit: the account row is locked, validated, updated and its
// transaction row appended, or nothing is written at all.
type TransactionEngine struct {
	store repo_interfaces.LedgerStore
}

func NewTransactionEngine(store repo_interfaces.LedgerStore) *TransactionEngine {
	return &TransactionEngine{store: store}
}

func (e *TransactionEngine) OpenAccount(ctx context.Context, clientID int64, kind domain.AccountKind, initialBalance decimal.Decimal) (domain.Account, error) {
	logger.Info("transaction engine open account", logger.Fields{
		"clientId":       clientID,
		"kind":           kind,
		"initialBalance": initialBalance,
	})

	if !kind.Valid() {
		return domain.Account{}, fmt.Errorf("%w: account kind must be one of SAVINGS, CHECKING, TERM_DEPOSIT", commons.ErrInvalidArgument)
	}
	if initialBalance.IsNegative() {
		return domain.Account{}, fmt.Errorf("%w: initial balance cannot be negative", commons.ErrInvalidArgument)
	}
	if initialBalance.GreaterThan(maxBalance) {
		return domain.Account{}, fmt.Errorf("%w: initial balance exceeds %s", commons.ErrInvalidArgument, maxBalance.StringFixed(2))
	}
	if err := checkPrecision(initialBalance, "initial balance"); err != nil {
		return domain.Account{}, err
	}

	var opened domain.Account
	err := e.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		if _, err := repos.Clients.GetByID(ctx, clientID); err != nil {
			return err
		}

		account := domain.Account{
			ClientID: clientID,
			Kind:     kind,
			Balance:  initialBalance,
			Active:   true,
		}

		var err error
		for attempt := 1; ; attempt++ {
			account.AccountNumber, err = repos.Accounts.GenerateUniqueAccountNumber(ctx)
			if err != nil {
				return err
			}

			opened, err = repos.Accounts.Create(ctx, account)
			if errors.Is(err, commons.ErrAccountNumberTaken) && attempt < maxAccountOpenAttempts {
				continue
			}
			if err != nil {
				return err
			}
			break
		}

		if initialBalance.IsPositive() {
			_, err = repos.Transactions.Create(ctx, domain.Transaction{
				AccountID:     opened.ID,
				Kind:          domain.TransactionKindDeposit,
				Amount:        decimal.NewNullDecimal(initialBalance),
				Description:   openingDescription,
				BalanceBefore: decimal.Zero,
				BalanceAfter:  initialBalance,
			})
		}
		return err
	})
	if err != nil {
		logger.Error("transaction engine open account failed", err, logger.Fields{"clientId": clientID})
		return domain.Account{}, err
	}

	logger.Info("transaction engine open account success", logger.Fields{
		"accountId":     opened.ID,
		"accountNumber": opened.AccountNumber,
	})
	return opened, nil
}

func (e *TransactionEngine) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (domain.Account, error) {
	return e.move(ctx, accountID, domain.TransactionKindDeposit, amount, describe(description, depositDescription))
}

func (e *TransactionEngine) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (domain.Account, error) {
	return e.move(ctx, accountID, domain.TransactionKindWithdrawal, amount, describe(description, withdrawalDescription))
}

func (e *TransactionEngine) move(ctx context.Context, accountID int64, kind domain.TransactionKind, amount decimal.Decimal, description string) (domain.Account, error) {
	fields := logger.Fields{
		"accountId": accountID,
		"kind":      kind,
		"amount":    amount,
	}
	logger.Info("transaction engine movement", fields)

	var updated domain.Account
	err := e.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		account, err := lockActiveAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}
		if err := validateAmount(amount); err != nil {
			return err
		}

		updated, err = post(ctx, repos, account, kind, amount, description)
		return err
	})
	if err != nil {
		logger.Error("transaction engine movement failed", err, fields)
		return domain.Account{}, err
	}

	logger.Info("transaction engine movement success", logger.Fields{
		"accountId": updated.ID,
		"kind":      kind,
		"balance":   updated.Balance,
	})
	return updated, nil
}

// QueryBalance returns the account and records the read as a QUERY row.
func (e *TransactionEngine) QueryBalance(ctx context.Context, accountID int64) (domain.Account, error) {
	var account domain.Account
	err := e.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		account, err = lockActiveAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}

		_, err = repos.Transactions.Create(ctx, domain.Transaction{
			AccountID:     account.ID,
			Kind:          domain.TransactionKindQuery,
			Description:   queryDescription,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.Balance,
		})
		return err
	})
	if err != nil {
		logger.Error("transaction engine query balance failed", err, logger.Fields{"accountId": accountID})
		return domain.Account{}, err
	}

	return account, nil
}

func (e *TransactionEngine) Transfer(ctx context.Context, cmd domain.TransferCommand) (domain.TransferResult, error) {
	fields := logger.Fields{
		"sourceAccountId":      cmd.SourceAccountID,
		"destinationAccountId": cmd.DestinationAccountID,
		"amount":               cmd.Amount,
		"requestingClientId":   cmd.RequestingClientID,
	}
	logger.Info("transaction engine transfer", fields)

	if cmd.SourceAccountID == cmd.DestinationAccountID {
		return domain.TransferResult{}, fmt.Errorf("%w: source and destination accounts must differ", commons.ErrInvalidArgument)
	}
	if err := validateAmount(cmd.Amount); err != nil {
		return domain.TransferResult{}, err
	}

	var result domain.TransferResult
	err := e.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		source, destination, err := lockPair(ctx, repos, cmd.SourceAccountID, cmd.DestinationAccountID)
		if err != nil {
			return err
		}

		if source.ClientID != cmd.RequestingClientID {
			return fmt.Errorf("%w: source account %s does not belong to the requesting client", commons.ErrPermissionDenied, source.AccountNumber)
		}
		if !source.Active {
			return fmt.Errorf("%w: source account %s is inactive", commons.ErrInvalidState, source.AccountNumber)
		}
		if !destination.Active {
			return fmt.Errorf("%w: destination account %s is inactive", commons.ErrInvalidState, destination.AccountNumber)
		}

		debited, err := post(ctx, repos, source, domain.TransactionKindWithdrawal, cmd.Amount,
			legDescription("transfer to account "+destination.AccountNumber, cmd.Description))
		if err != nil {
			return err
		}
		credited, err := post(ctx, repos, destination, domain.TransactionKindDeposit, cmd.Amount,
			legDescription("transfer from account "+source.AccountNumber, cmd.Description))
		if err != nil {
			return err
		}

		result = domain.TransferResult{
			SourceAccountNumber:      debited.AccountNumber,
			DestinationAccountNumber: credited.AccountNumber,
			Amount:                   cmd.Amount,
			SourceBalance:            debited.Balance,
			DestinationBalance:       credited.Balance,
		}
		return nil
	})
	if err != nil {
		logger.Error("transaction engine transfer failed", err, fields)
		return domain.TransferResult{}, err
	}

	logger.Info("transaction engine transfer success", logger.Fields{
		"sourceAccountNumber":      result.SourceAccountNumber,
		"destinationAccountNumber": result.DestinationAccountNumber,
		"amount":                   result.Amount,
	})
	return result, nil
}

// History returns the account's ledger newest first. It holds no cursor
// state, so repeated calls without writes in between return equal slices.
func (e *TransactionEngine) History(ctx context.Context, accountID int64) ([]domain.TransactionEntry, error) {
	var entries []domain.TransactionEntry
	err := e.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		if _, err := repos.Accounts.GetByID(ctx, accountID); err != nil {
			return err
		}

		var err error
		entries, err = repos.Transactions.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		logger.Error("transaction engine history failed", err, logger.Fields{"accountId": accountID})
		return nil, err
	}

	return entries, nil
}

// Account reads an account without side effects.
func (e *TransactionEngine) Account(ctx context.Context, accountID int64) (domain.Account, error) {
	var account domain.Account
	err := e.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		account, err = repos.Accounts.GetByID(ctx, accountID)
		return err
	})
	return account, err
}

// ClientAccounts lists the accounts owned by one client in id order.
func (e *TransactionEngine) ClientAccounts(ctx context.Context, clientID int64) ([]domain.AccountWithOwner, error) {
	var accounts []domain.AccountWithOwner
	err := e.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		accounts, err = repos.Accounts.ListByClient(ctx, clientID)
		return err
	})
	return accounts, err
}

// DeactivateAccount is the normal-path soft delete: ACTIVE -> INACTIVE only.
func (e *TransactionEngine) DeactivateAccount(ctx context.Context, accountID int64) (domain.Account, error) {
	var account domain.Account
	err := e.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		account, err = lockActiveAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}
		if err := repos.Accounts.SetActive(ctx, account.ID, false); err != nil {
			return err
		}
		account.Active = false
		return nil
	})
	if err != nil {
		logger.Error("transaction engine deactivate account failed", err, logger.Fields{"accountId": accountID})
		return domain.Account{}, err
	}

	logger.Info("transaction engine deactivate account success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})
	return account, nil
}

func lockActiveAccount(ctx context.Context, repos repo_interfaces.Repositories, accountID int64) (domain.Account, error) {
	account, err := repos.Accounts.GetByIDForUpdate(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}
	if !account.Active {
		return domain.Account{}, fmt.Errorf("%w: account %s is inactive", commons.ErrInvalidState, account.AccountNumber)
	}
	return account, nil
}

// lockPair locks both rows in ascending id order so that two opposing
// transfers cannot deadlock, and returns them as (source, destination).
func lockPair(ctx context.Context, repos repo_interfaces.Repositories, sourceID int64, destinationID int64) (domain.Account, domain.Account, error) {
	firstID, secondID := sourceID, destinationID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := repos.Accounts.GetByIDForUpdate(ctx, firstID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}
	second, err := repos.Accounts.GetByIDForUpdate(ctx, secondID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if first.ID == sourceID {
		return first, second, nil
	}
	return second, first, nil
}

// post applies one signed movement to a locked account and appends its row.
func post(ctx context.Context, repos repo_interfaces.Repositories, account domain.Account, kind domain.TransactionKind, amount decimal.Decimal, description string) (domain.Account, error) {
	before := account.Balance
	var after decimal.Decimal

	switch kind {
	case domain.TransactionKindDeposit:
		after = before.Add(amount)
		if after.GreaterThan(maxBalance) {
			return domain.Account{}, fmt.Errorf("%w: resulting balance exceeds %s", commons.ErrInvalidArgument, maxBalance.StringFixed(2))
		}
	case domain.TransactionKindWithdrawal:
		if amount.GreaterThan(before) {
			return domain.Account{}, fmt.Errorf("%w: account %s balance %s is below %s", commons.ErrInsufficientFunds, account.AccountNumber, before.StringFixed(2), amount.StringFixed(2))
		}
		after = before.Sub(amount)
	default:
		return domain.Account{}, fmt.Errorf("post: unsupported transaction kind %q", kind)
	}

	if err := repos.Accounts.UpdateBalance(ctx, account.ID, after); err != nil {
		return domain.Account{}, err
	}
	if _, err := repos.Transactions.Create(ctx, domain.Transaction{
		AccountID:     account.ID,
		Kind:          kind,
		Amount:        decimal.NewNullDecimal(amount),
		Description:   description,
		BalanceBefore: before,
		BalanceAfter:  after,
	}); err != nil {
		return domain.Account{}, err
	}

	account.Balance = after
	return account, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", commons.ErrInvalidArgument)
	}
	if amount.GreaterThan(maxBalance) {
		return fmt.Errorf("%w: amount exceeds %s", commons.ErrInvalidArgument, maxBalance.StringFixed(2))
	}
	return checkPrecision(amount, "amount")
}

func checkPrecision(value decimal.Decimal, name string) error {
	if !value.Equal(value.Round(2)) {
		return fmt.Errorf("%w: %s must have at most 2 decimal places", commons.ErrInvalidArgument, name)
	}
	return nil
}

func describe(description string, fallback string) string {
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		return trimmed
	}
	return fallback
}

func legDescription(base string, description string) string {
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		return base + " - " + trimmed
	}
	return base
}
