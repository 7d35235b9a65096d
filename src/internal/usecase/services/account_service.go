package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
	"github.com/shopspring/decimal"
)

// AccountService applies caller ownership rules on top of the engine:
// clients act on their own accounts only, administrators on any.
type AccountService struct {
	engine *TransactionEngine
}

func NewAccountService(engine *TransactionEngine) *AccountService {
	return &AccountService{engine: engine}
}

func (s *AccountService) OpenAccount(ctx context.Context, principal domain.Principal, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"username": principal.Username,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), invalid(err)
	}

	clientID := principal.ClientID
	if principal.IsAdmin() {
		if req.ClientID == 0 {
			err := fmt.Errorf("%w: clientId is required", commons.ErrInvalidArgument)
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
		clientID = req.ClientID
	} else if req.ClientID != 0 && req.ClientID != clientID {
		err := fmt.Errorf("%w: clients can only open accounts for themselves", commons.ErrPermissionDenied)
		return failure[models.AccountResponse](err, "open account"), err
	}

	kind := domain.AccountKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	account, err := s.engine.OpenAccount(ctx, clientID, kind, req.InitialBalance)
	if err != nil {
		return failure[models.AccountResponse](err, "open account"), err
	}

	response := models.NewAccountResponse(account)
	logger.Info("account service open account success", logger.Fields{
		"accountId":     response.ID,
		"accountNumber": response.AccountNumber,
		"clientId":      response.ClientID,
	})
	return commons.SuccessResponse("account opened successfully", response), nil
}

func (s *AccountService) MyAccounts(ctx context.Context, principal domain.Principal) (commons.Response[[]models.AccountResponse], error) {
	if principal.ClientID == 0 {
		err := fmt.Errorf("%w: %s has no client profile", commons.ErrPermissionDenied, principal.Username)
		return failure[[]models.AccountResponse](err, "list accounts"), err
	}

	accounts, err := s.engine.ClientAccounts(ctx, principal.ClientID)
	if err != nil {
		logger.Error("account service my accounts failed", err, logger.Fields{"clientId": principal.ClientID})
		return failure[[]models.AccountResponse](err, "list accounts"), err
	}

	response := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, models.NewAccountWithOwnerResponse(account))
	}
	return commons.SuccessResponse("accounts fetched successfully", response), nil
}

func (s *AccountService) Deposit(ctx context.Context, principal domain.Principal, req models.MovementRequest) (commons.Response[models.AccountResponse], error) {
	return s.movement(ctx, principal, req, "deposit", s.engine.Deposit)
}

func (s *AccountService) Withdraw(ctx context.Context, principal domain.Principal, req models.MovementRequest) (commons.Response[models.AccountResponse], error) {
	return s.movement(ctx, principal, req, "withdraw", s.engine.Withdraw)
}

type movementFunc func(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (domain.Account, error)

func (s *AccountService) movement(ctx context.Context, principal domain.Principal, req models.MovementRequest, action string, apply movementFunc) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service "+action+" request", logger.Fields{
		"username": principal.Username,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service "+action+" validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), invalid(err)
	}
	if _, err := s.authorize(ctx, principal, req.AccountID); err != nil {
		return failure[models.AccountResponse](err, action), err
	}

	account, err := apply(ctx, req.AccountID, req.Amount, req.Description)
	if err != nil {
		return failure[models.AccountResponse](err, action), err
	}

	return commons.SuccessResponse(action+" completed successfully", models.NewAccountResponse(account)), nil
}

func (s *AccountService) Balance(ctx context.Context, principal domain.Principal, accountID int64) (commons.Response[models.BalanceResponse], error) {
	if _, err := s.authorize(ctx, principal, accountID); err != nil {
		return failure[models.BalanceResponse](err, "query balance"), err
	}

	account, err := s.engine.QueryBalance(ctx, accountID)
	if err != nil {
		return failure[models.BalanceResponse](err, "query balance"), err
	}

	response := models.BalanceResponse{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Kind:          string(account.Kind),
		Balance:       account.Balance,
		Status:        account.Status(),
	}
	return commons.SuccessResponse("balance fetched successfully", response), nil
}

func (s *AccountService) History(ctx context.Context, principal domain.Principal, accountID int64) (commons.Response[[]models.TransactionResponse], error) {
	if _, err := s.authorize(ctx, principal, accountID); err != nil {
		return failure[[]models.TransactionResponse](err, "fetch history"), err
	}

	entries, err := s.engine.History(ctx, accountID)
	if err != nil {
		return failure[[]models.TransactionResponse](err, "fetch history"), err
	}

	return commons.SuccessResponse("history fetched successfully", models.NewTransactionResponses(entries)), nil
}

func (s *AccountService) Deactivate(ctx context.Context, principal domain.Principal, accountID int64) (commons.Response[models.AccountResponse], error) {
	if !principal.IsAdmin() {
		err := fmt.Errorf("%w: only administrators can deactivate accounts", commons.ErrPermissionDenied)
		return failure[models.AccountResponse](err, "deactivate account"), err
	}

	account, err := s.engine.DeactivateAccount(ctx, accountID)
	if err != nil {
		return failure[models.AccountResponse](err, "deactivate account"), err
	}

	return commons.SuccessResponse("account deactivated successfully", models.NewAccountResponse(account)), nil
}

// authorize loads the account and checks the caller may operate on it.
func (s *AccountService) authorize(ctx context.Context, principal domain.Principal, accountID int64) (domain.Account, error) {
	account, err := s.engine.Account(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}
	if principal.IsAdmin() {
		return account, nil
	}
	if principal.ClientID == 0 || account.ClientID != principal.ClientID {
		return domain.Account{}, fmt.Errorf("%w: account %s does not belong to %s", commons.ErrPermissionDenied, account.AccountNumber, principal.Username)
	}
	return account, nil
}
