package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	SourceAccountID      int64           `json:"sourceAccountId"`
	DestinationAccountID int64           `json:"destinationAccountId"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description,omitempty"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.SourceAccountID <= 0 {
		errs = append(errs, "sourceAccountId is required")
	}
	if r.DestinationAccountID <= 0 {
		errs = append(errs, "destinationAccountId is required")
	}
	if r.SourceAccountID > 0 && r.SourceAccountID == r.DestinationAccountID {
		errs = append(errs, "sourceAccountId and destinationAccountId must differ")
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

type TransferResponse struct {
	SourceAccountNumber      string          `json:"sourceAccountNumber"`
	DestinationAccountNumber string          `json:"destinationAccountNumber"`
	Amount                   decimal.Decimal `json:"amount"`
	SourceBalance            decimal.Decimal `json:"sourceBalance"`
	Status                   string          `json:"status"`
}
