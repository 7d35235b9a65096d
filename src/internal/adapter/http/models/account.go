package models

import (
	"errors"
	"strings"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/shopspring/decimal"
)

type OpenAccountRequest struct {
	// ClientID is only honoured for administrators; clients always open
	// accounts for themselves.
	ClientID       int64           `json:"clientId,omitempty"`
	Kind           string          `json:"kind"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (r OpenAccountRequest) Validate() error {
	var errs []string

	kind := domain.AccountKind(strings.ToUpper(strings.TrimSpace(r.Kind)))
	if kind == "" {
		errs = append(errs, "kind is required")
	} else if !kind.Valid() {
		errs = append(errs, "kind must be one of SAVINGS, CHECKING, TERM_DEPOSIT")
	}
	if r.InitialBalance.IsNegative() {
		errs = append(errs, "initialBalance cannot be negative")
	}
	if r.ClientID < 0 {
		errs = append(errs, "clientId must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID            int64           `json:"id"`
	ClientID      int64           `json:"clientId"`
	AccountNumber string          `json:"accountNumber"`
	Kind          string          `json:"kind"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	OpenedAt      string          `json:"openedAt"`
	OwnerName     string          `json:"ownerName,omitempty"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:            account.ID,
		ClientID:      account.ClientID,
		AccountNumber: account.AccountNumber,
		Kind:          string(account.Kind),
		Balance:       account.Balance,
		Status:        account.Status(),
		OpenedAt:      account.OpenedAt.Format(time.RFC3339),
	}
}

func NewAccountWithOwnerResponse(account domain.AccountWithOwner) AccountResponse {
	response := NewAccountResponse(account.Account)
	response.OwnerName = account.OwnerName
	return response
}

type BalanceResponse struct {
	AccountID     int64           `json:"accountId"`
	AccountNumber string          `json:"accountNumber"`
	Kind          string          `json:"kind"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
}
