package service_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type AccountService interface {
	OpenAccount(ctx context.Context, principal domain.Principal, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	MyAccounts(ctx context.Context, principal domain.Principal) (commons.Response[[]models.AccountResponse], error)
	Deposit(ctx context.Context, principal domain.Principal, req models.MovementRequest) (commons.Response[models.AccountResponse], error)
	Withdraw(ctx context.Context, principal domain.Principal, req models.MovementRequest) (commons.Response[models.AccountResponse], error)
	Balance(ctx context.Context, principal domain.Principal, accountID int64) (commons.Response[models.BalanceResponse], error)
	History(ctx context.Context, principal domain.Principal, accountID int64) (commons.Response[[]models.TransactionResponse], error)
	Deactivate(ctx context.Context, principal domain.Principal, accountID int64) (commons.Response[models.AccountResponse], error)
}
