package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestOpenAccountRequestValidate(t *testing.T) {
	if err := (OpenAccountRequest{Kind: "checking"}).Validate(); err != nil {
		t.Fatalf("expected lower-case kind to be accepted, got %v", err)
	}

	err := OpenAccountRequest{Kind: "PIGGY", InitialBalance: decimal.NewFromInt(-1)}.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "kind must be one of") || !strings.Contains(err.Error(), "initialBalance cannot be negative") {
		t.Fatalf("expected both problems to be reported, got %q", err)
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Username:             "ana",
		Password:             "secret1",
		FullName:             "Ana Ruiz",
		Email:                "ana@example.com",
		IdentificationNumber: "1020304050",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	invalid := valid
	invalid.Email = "not-an-email"
	invalid.IdentificationNumber = "10A"
	invalid.Password = "123"
	err := invalid.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := len(strings.Split(err.Error(), "; ")); got != 3 {
		t.Fatalf("expected 3 joined errors, got %d: %q", got, err)
	}
}

func TestTransferRequestValidate(t *testing.T) {
	err := TransferRequest{SourceAccountID: 3, DestinationAccountID: 3, Amount: decimal.NewFromInt(5)}.Validate()
	if err == nil || !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("expected same-account rejection, got %v", err)
	}
}
