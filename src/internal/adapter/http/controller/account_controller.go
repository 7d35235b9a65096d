package controller

import (
	"net/http"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/middleware"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/service_interfaces"
	"github.com/gorilla/mux"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(router *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	router.Handle("/accounts", protect(c.openAccount, authMiddleware)).Methods(http.MethodPost)
	router.Handle("/my-accounts", protect(c.myAccounts, authMiddleware)).Methods(http.MethodGet)
	router.Handle("/transactions/deposit", protect(c.deposit, authMiddleware)).Methods(http.MethodPost)
	router.Handle("/transactions/withdraw", protect(c.withdraw, authMiddleware)).Methods(http.MethodPost)
	router.Handle("/accounts/{id:[0-9]+}/balance", protect(c.balance, authMiddleware)).Methods(http.MethodGet)
	router.Handle("/accounts/{id:[0-9]+}/history", protect(c.history, authMiddleware)).Methods(http.MethodGet)
	router.Handle("/accounts/{id:[0-9]+}/deactivate", protect(adminOnly(c.deactivate), authMiddleware)).Methods(http.MethodPost)
}

func (c *AccountController) openAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	principal, ok := principalOf[models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	var req models.OpenAccountRequest
	if !decodeJSON[models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.OpenAccount(r.Context(), principal, req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *AccountController) myAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	principal, ok := principalOf[[]models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.MyAccounts(r.Context(), principal)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	principal, ok := principalOf[models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	var req models.MovementRequest
	if !decodeJSON[models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Deposit(r.Context(), principal, req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	principal, ok := principalOf[models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	var req models.MovementRequest
	if !decodeJSON[models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Withdraw(r.Context(), principal, req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) balance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	principal, ok := principalOf[models.BalanceResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.BalanceResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Balance(r.Context(), principal, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) history(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	principal, ok := principalOf[[]models.TransactionResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[[]models.TransactionResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.History(r.Context(), principal, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) deactivate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	principal, ok := principalOf[models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	id, ok := pathID[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Deactivate(r.Context(), principal, id)
	respond(w, r, start, http.StatusOK, response, err)
}

func adminOnly(handler http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireAdmin(handler).ServeHTTP
}
