package service_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
)

type AdminService interface {
	DeleteAccount(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error)
	DeleteClient(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error)
	DeleteUser(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error)
	DeleteTransaction(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error)
	UpdateTransactionDescription(ctx context.Context, id int64, req models.UpdateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error)
	GetTransaction(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error)
	ListAccounts(ctx context.Context, skip int, limit int) (commons.Response[[]models.AccountResponse], error)
	ListClients(ctx context.Context, skip int, limit int) (commons.Response[[]models.ClientResponse], error)
	ListTransactions(ctx context.Context, skip int, limit int) (commons.Response[[]models.TransactionResponse], error)
}
