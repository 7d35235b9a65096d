package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountKindSavings     AccountKind = "SAVINGS"
	AccountKindChecking    AccountKind = "CHECKING"
	AccountKindTermDeposit AccountKind = "TERM_DEPOSIT"
)

var accountKinds = []AccountKind{
	AccountKindSavings,
	AccountKindChecking,
	AccountKindTermDeposit,
}

// AccountKinds returns the supported account kinds in display order.
func AccountKinds() []AccountKind {
	out := make([]AccountKind, len(accountKinds))
	copy(out, accountKinds)
	return out
}

func (k AccountKind) Valid() bool {
	for _, kind := range accountKinds {
		if k == kind {
			return true
		}
	}
	return false
}

type Account struct {
	ID            int64
	ClientID      int64
	AccountNumber string
	Kind          AccountKind
	Balance       decimal.Decimal
	Active        bool
	OpenedAt      time.Time
}

const (
	AccountStatusActive   = "ACTIVE"
	AccountStatusInactive = "INACTIVE"
)

// Status is the external label of the one-way ACTIVE -> INACTIVE lifecycle.
func (a Account) Status() string {
	if a.Active {
		return AccountStatusActive
	}
	return AccountStatusInactive
}

// AccountWithOwner is an account joined with its owner's display name.
type AccountWithOwner struct {
	Account
	OwnerName string
}
