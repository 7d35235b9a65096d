package domain

import "github.com/shopspring/decimal"

type TransferCommand struct {
	SourceAccountID      int64
	DestinationAccountID int64
	Amount               decimal.Decimal
	Description          string
	RequestingClientID   int64
}

type TransferResult struct {
	SourceAccountNumber      string
	DestinationAccountNumber string
	Amount                   decimal.Decimal
	SourceBalance            decimal.Decimal
	DestinationBalance       decimal.Decimal
}
