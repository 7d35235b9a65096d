package models

import (
	"errors"
	"strings"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 255

// MovementRequest is the body of a deposit or a withdrawal.
type MovementRequest struct {
	AccountID   int64           `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

func (r MovementRequest) Validate() error {
	var errs []string

	if r.AccountID <= 0 {
		errs = append(errs, "accountId is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}
	if len(strings.TrimSpace(r.Description)) > maxDescriptionLength {
		errs = append(errs, "description must be at most 255 characters")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateTransactionRequest struct {
	Description string `json:"description"`
}

func (r UpdateTransactionRequest) Validate() error {
	description := strings.TrimSpace(r.Description)
	if description == "" {
		return errors.New("description is required")
	}
	if len(description) > maxDescriptionLength {
		return errors.New("description must be at most 255 characters")
	}
	return nil
}

type TransactionResponse struct {
	ID            int64            `json:"id"`
	AccountID     int64            `json:"accountId"`
	AccountNumber string           `json:"accountNumber,omitempty"`
	Kind          string           `json:"kind"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description"`
	BalanceBefore decimal.Decimal  `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal  `json:"balanceAfter"`
	CreatedAt     string           `json:"createdAt"`
}

func NewTransactionResponse(entry domain.TransactionEntry) TransactionResponse {
	response := TransactionResponse{
		ID:            entry.ID,
		AccountID:     entry.AccountID,
		AccountNumber: entry.AccountNumber,
		Kind:          string(entry.Kind),
		Description:   entry.Description,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		CreatedAt:     entry.CreatedAt.Format(time.RFC3339Nano),
	}
	if entry.Amount.Valid {
		amount := entry.Amount.Decimal
		response.Amount = &amount
	}
	return response
}

func NewTransactionResponses(entries []domain.TransactionEntry) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewTransactionResponse(entry))
	}
	return out
}
