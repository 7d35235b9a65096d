package services

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
)

const transferStatusCompleted = "COMPLETED"

type TransferService struct {
	engine *TransactionEngine
}

func NewTransferService(engine *TransactionEngine) *TransferService {
	return &TransferService{engine: engine}
}

// TransferFunds moves money out of one of the caller's accounts. An
// administrator acts on behalf of the source account's owner.
func (s *TransferService) TransferFunds(ctx context.Context, principal domain.Principal, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer funds request", logger.Fields{
		"username": principal.Username,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service transfer funds validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), invalid(err)
	}

	requestingClientID := principal.ClientID
	if principal.IsAdmin() {
		source, err := s.engine.Account(ctx, req.SourceAccountID)
		if err != nil {
			return failure[models.TransferResponse](err, "transfer funds"), err
		}
		requestingClientID = source.ClientID
	}

	result, err := s.engine.Transfer(ctx, domain.TransferCommand{
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               req.Amount,
		Description:          req.Description,
		RequestingClientID:   requestingClientID,
	})
	if err != nil {
		return failure[models.TransferResponse](err, "transfer funds"), err
	}

	response := models.TransferResponse{
		SourceAccountNumber:      result.SourceAccountNumber,
		DestinationAccountNumber: result.DestinationAccountNumber,
		Amount:                   result.Amount,
		SourceBalance:            result.SourceBalance,
		Status:                   transferStatusCompleted,
	}

	logger.Info("transfer service transfer funds success", logger.Fields{
		"sourceAccountNumber":      response.SourceAccountNumber,
		"destinationAccountNumber": response.DestinationAccountNumber,
		"amount":                   response.Amount,
	})
	return commons.SuccessResponse("transfer completed successfully", response), nil
}
