package service_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type TransferService interface {
	TransferFunds(ctx context.Context, principal domain.Principal, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}
