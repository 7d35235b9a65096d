package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
)

// AdminService holds the administrative overrides. Deletes here are hard
// deletes that cascade explicitly; they never touch other accounts' balances.
type AdminService struct {
	store         repo_interfaces.LedgerStore
	adminUsername string
}

func NewAdminService(store repo_interfaces.LedgerStore, adminUsername string) *AdminService {
	return &AdminService{store: store, adminUsername: strings.TrimSpace(adminUsername)}
}

func (s *AdminService) DeleteAccount(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error) {
	logger.Info("admin service delete account request", logger.Fields{"accountId": id})

	var cascaded int64
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		if _, err := repos.Accounts.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		var err error
		cascaded, err = deleteAccount(ctx, repos, id)
		return err
	})
	if err != nil {
		logger.Error("admin service delete account failed", err, logger.Fields{"accountId": id})
		return failure[models.DeleteResponse](err, "delete account"), err
	}

	logger.Info("admin service delete account success", logger.Fields{
		"accountId":           id,
		"deletedTransactions": cascaded,
	})
	return commons.SuccessResponse("account deleted successfully", models.DeleteResponse{
		Resource: "account",
		ID:       id,
		Cascaded: cascaded,
	}), nil
}

func (s *AdminService) DeleteClient(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error) {
	logger.Info("admin service delete client request", logger.Fields{"clientId": id})

	var cascaded int64
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		client, err := repos.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		user, err := repos.Users.GetByID(ctx, client.UserID)
		if err != nil {
			return err
		}
		if err := s.checkDeletable(user); err != nil {
			return err
		}

		cascaded, err = deleteClient(ctx, repos, client)
		if err != nil {
			return err
		}
		if err := repos.Users.Delete(ctx, user.ID); err != nil {
			return err
		}
		cascaded++
		return nil
	})
	if err != nil {
		logger.Error("admin service delete client failed", err, logger.Fields{"clientId": id})
		return failure[models.DeleteResponse](err, "delete client"), err
	}

	logger.Info("admin service delete client success", logger.Fields{
		"clientId": id,
		"cascaded": cascaded,
	})
	return commons.SuccessResponse("client deleted successfully", models.DeleteResponse{
		Resource: "client",
		ID:       id,
		Cascaded: cascaded,
	}), nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error) {
	logger.Info("admin service delete user request", logger.Fields{"userId": id})

	var cascaded int64
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkDeletable(user); err != nil {
			return err
		}

		client, err := repos.Clients.GetByUserID(ctx, user.ID)
		switch {
		case err == nil:
			cascaded, err = deleteClient(ctx, repos, client)
			if err != nil {
				return err
			}
		case !errors.Is(err, commons.ErrNotFound):
			return err
		}

		return repos.Users.Delete(ctx, user.ID)
	})
	if err != nil {
		logger.Error("admin service delete user failed", err, logger.Fields{"userId": id})
		return failure[models.DeleteResponse](err, "delete user"), err
	}

	logger.Info("admin service delete user success", logger.Fields{
		"userId":   id,
		"cascaded": cascaded,
	})
	return commons.SuccessResponse("user deleted successfully", models.DeleteResponse{
		Resource: "user",
		ID:       id,
		Cascaded: cascaded,
	}), nil
}

// DeleteTransaction removes one ledger row. Account balances are not
// recomputed.
func (s *AdminService) DeleteTransaction(ctx context.Context, id int64) (commons.Response[models.DeleteResponse], error) {
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		return repos.Transactions.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("admin service delete transaction failed", err, logger.Fields{"transactionId": id})
		return failure[models.DeleteResponse](err, "delete transaction"), err
	}

	logger.Info("admin service delete transaction success", logger.Fields{"transactionId": id})
	return commons.SuccessResponse("transaction deleted successfully", models.DeleteResponse{
		Resource: "transaction",
		ID:       id,
	}), nil
}

func (s *AdminService) UpdateTransactionDescription(ctx context.Context, id int64, req models.UpdateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), invalid(err)
	}

	var entry domain.TransactionEntry
	err := s.store.Atomic(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		entry, err = repos.Transactions.UpdateDescription(ctx, id, strings.TrimSpace(req.Description))
		return err
	})
	if err != nil {
		logger.Error("admin service update transaction failed", err, logger.Fields{"transactionId": id})
		return failure[models.TransactionResponse](err, "update transaction"), err
	}

	return commons.SuccessResponse("transaction updated successfully", models.NewTransactionResponse(entry)), nil
}

func (s *AdminService) GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error) {
	var account domain.Account
	err := s.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		account, err = repos.Accounts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return failure[models.AccountResponse](err, "get account"), err
	}

	return commons.SuccessResponse("account fetched successfully", models.NewAccountResponse(account)), nil
}

func (s *AdminService) GetTransaction(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error) {
	var entry domain.TransactionEntry
	err := s.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		entry, err = repos.Transactions.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return failure[models.TransactionResponse](err, "get transaction"), err
	}

	return commons.SuccessResponse("transaction fetched successfully", models.NewTransactionResponse(entry)), nil
}

func (s *AdminService) ListAccounts(ctx context.Context, skip int, limit int) (commons.Response[[]models.AccountResponse], error) {
	var accounts []domain.AccountWithOwner
	err := s.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		accounts, err = repos.Accounts.List(ctx, skip, limit)
		return err
	})
	if err != nil {
		logger.Error("admin service list accounts failed", err, nil)
		return failure[[]models.AccountResponse](err, "list accounts"), err
	}

	response := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, models.NewAccountWithOwnerResponse(account))
	}
	return commons.SuccessResponse("accounts fetched successfully", response), nil
}

func (s *AdminService) ListClients(ctx context.Context, skip int, limit int) (commons.Response[[]models.ClientResponse], error) {
	var clients []domain.ClientWithUsername
	err := s.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		clients, err = repos.Clients.List(ctx, skip, limit)
		return err
	})
	if err != nil {
		logger.Error("admin service list clients failed", err, nil)
		return failure[[]models.ClientResponse](err, "list clients"), err
	}

	response := make([]models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, models.NewClientResponse(client))
	}
	return commons.SuccessResponse("clients fetched successfully", response), nil
}

func (s *AdminService) ListTransactions(ctx context.Context, skip int, limit int) (commons.Response[[]models.TransactionResponse], error) {
	var entries []domain.TransactionEntry
	err := s.store.Read(ctx, func(ctx context.Context, repos repo_interfaces.Repositories) error {
		var err error
		entries, err = repos.Transactions.List(ctx, skip, limit)
		return err
	})
	if err != nil {
		logger.Error("admin service list transactions failed", err, nil)
		return failure[[]models.TransactionResponse](err, "list transactions"), err
	}

	return commons.SuccessResponse("transactions fetched successfully", models.NewTransactionResponses(entries)), nil
}

func (s *AdminService) checkDeletable(user domain.User) error {
	if user.Role == domain.RoleAdmin || strings.EqualFold(user.Username, s.adminUsername) {
		return fmt.Errorf("%w: the built-in administrator cannot be deleted", commons.ErrPermissionDenied)
	}
	return nil
}

// deleteAccount removes an account and its transactions, returning how many
// transaction rows went with it.
func deleteAccount(ctx context.Context, repos repo_interfaces.Repositories, id int64) (int64, error) {
	removed, err := repos.Transactions.DeleteByAccount(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := repos.Accounts.Delete(ctx, id); err != nil {
		return 0, err
	}
	return removed, nil
}

// deleteClient removes a client profile with all of its accounts. The count
// covers deleted accounts and transactions.
func deleteClient(ctx context.Context, repos repo_interfaces.Repositories, client domain.Client) (int64, error) {
	accounts, err := repos.Accounts.ListByClient(ctx, client.ID)
	if err != nil {
		return 0, err
	}

	var cascaded int64
	for _, account := range accounts {
		removed, err := deleteAccount(ctx, repos, account.ID)
		if err != nil {
			return 0, err
		}
		cascaded += removed + 1
	}

	if err := repos.Clients.Delete(ctx, client.ID); err != nil {
		return 0, err
	}
	return cascaded, nil
}
