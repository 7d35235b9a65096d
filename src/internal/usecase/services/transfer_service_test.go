package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestTransferServiceValidationError(t *testing.T) {
	svc := services.NewTransferService(nil)

	response, err := svc.TransferFunds(context.Background(), adminPrincipal, models.TransferRequest{
		SourceAccountID:      1,
		DestinationAccountID: 1,
		Amount:               decimal.Zero,
	})
	if !errors.Is(err, commons.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if len(response.Errors) != 1 {
		t.Fatalf("expected joined validation message, got %v", response.Errors)
	}
}

func TestTransferServiceUsesCallerAsRequestingClient(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	luis := seedClient(t, store, "luis", "1002")
	anaAccount := openAccount(t, engine, ana.ClientID, "100")
	luisAccount := openAccount(t, engine, luis.ClientID, "100")
	svc := services.NewTransferService(engine)

	_, err := svc.TransferFunds(ctx, luis, models.TransferRequest{
		SourceAccountID:      anaAccount.ID,
		DestinationAccountID: luisAccount.ID,
		Amount:               amount("10"),
	})
	if !errors.Is(err, commons.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}

	response, err := svc.TransferFunds(ctx, ana, models.TransferRequest{
		SourceAccountID:      anaAccount.ID,
		DestinationAccountID: luisAccount.ID,
		Amount:               amount("10"),
		Description:          "dinner",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !response.Data.SourceBalance.Equal(amount("90")) || response.Data.Status != "COMPLETED" {
		t.Fatalf("unexpected transfer response %+v", response.Data)
	}
	if got := balanceOf(t, store, luisAccount.ID); !got.Equal(amount("110")) {
		t.Fatalf("expected destination 110, got %s", got)
	}
}

func TestTransferServiceAdminActsForOwner(t *testing.T) {
	ctx := context.Background()
	store, engine := newEngine(t)
	ana := seedClient(t, store, "ana", "1001")
	luis := seedClient(t, store, "luis", "1002")
	anaAccount := openAccount(t, engine, ana.ClientID, "100")
	luisAccount := openAccount(t, engine, luis.ClientID, "0")
	svc := services.NewTransferService(engine)

	response, err := svc.TransferFunds(ctx, adminPrincipal, models.TransferRequest{
		SourceAccountID:      anaAccount.ID,
		DestinationAccountID: luisAccount.ID,
		Amount:               amount("150"),
	})
	if !errors.Is(err, commons.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if response.Message != "insufficient funds" {
		t.Fatalf("unexpected message %q", response.Message)
	}

	if _, err := svc.TransferFunds(ctx, adminPrincipal, models.TransferRequest{
		SourceAccountID:      anaAccount.ID,
		DestinationAccountID: luisAccount.ID,
		Amount:               amount("100"),
	}); err != nil {
		t.Fatalf("admin transfer: %v", err)
	}
	if got := balanceOf(t, store, anaAccount.ID); !got.IsZero() {
		t.Fatalf("expected source drained, got %s", got)
	}
}
