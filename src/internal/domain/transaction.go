package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "DEPOSIT"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionKindQuery      TransactionKind = "QUERY"
)

// Transaction is one ledger row. Amount is null for QUERY rows.
type Transaction struct {
	ID            int64
	AccountID     int64
	Kind          TransactionKind
	Amount        decimal.NullDecimal
	Description   string
	CreatedAt     time.Time
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// TransactionEntry is a transaction joined with its account number.
type TransactionEntry struct {
	Transaction
	AccountNumber string
}
