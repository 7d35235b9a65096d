package commons

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("withdraw account 7: %w", ErrInsufficientFunds)
	if got := Kind(err); got != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", got)
	}
}

func TestKindReturnsNilForUnknownErrors(t *testing.T) {
	if got := Kind(errors.New("boom")); got != nil {
		t.Fatalf("expected nil kind, got %v", got)
	}
}

func TestErrorResponseCarriesErrors(t *testing.T) {
	resp := ErrorResponse[string]("validation failed", "amount must be greater than zero")
	if resp.Success || resp.Data != nil {
		t.Fatal("expected unsuccessful response without data")
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(resp.Errors))
	}
}
