package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/service_interfaces"
	"github.com/gorilla/mux"
)

type AdminController struct {
	service service_interfaces.AdminService
}

func NewAdminController(service service_interfaces.AdminService) *AdminController {
	return &AdminController{service: service}
}

// RegisterRoutes mounts /admin; every route requires an administrator token.
func (c *AdminController) RegisterRoutes(router *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	admin := router.PathPrefix("/admin").Subrouter()
	route := func(path string, handler http.HandlerFunc, method string) {
		admin.Handle(path, protect(adminOnly(handler), authMiddleware)).Methods(method)
	}

	route("/accounts", c.listAccounts, http.MethodGet)
	route("/accounts/{id:[0-9]+}", c.getAccount, http.MethodGet)
	route("/accounts/{id:[0-9]+}", c.deleteAccount, http.MethodDelete)
	route("/clients", c.listClients, http.MethodGet)
	route("/clients/{id:[0-9]+}", c.deleteClient, http.MethodDelete)
	route("/users/{id:[0-9]+}", c.deleteUser, http.MethodDelete)
	route("/transactions", c.listTransactions, http.MethodGet)
	route("/transactions/{id:[0-9]+}", c.getTransaction, http.MethodGet)
	route("/transactions/{id:[0-9]+}", c.updateTransaction, http.MethodPut)
	route("/transactions/{id:[0-9]+}", c.deleteTransaction, http.MethodDelete)
}

func (c *AdminController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	skip, limit, ok := pageParams[[]models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListAccounts(r.Context(), skip, limit)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) listClients(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	skip, limit, ok := pageParams[[]models.ClientResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListClients(r.Context(), skip, limit)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	skip, limit, ok := pageParams[[]models.TransactionResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListTransactions(r.Context(), skip, limit)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) getAccount(w http.ResponseWriter, r *http.Request) {
	withID(w, r, c.service.GetAccount)
}

func (c *AdminController) getTransaction(w http.ResponseWriter, r *http.Request) {
	withID(w, r, c.service.GetTransaction)
}

func (c *AdminController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	withID(w, r, c.service.DeleteAccount)
}

func (c *AdminController) deleteClient(w http.ResponseWriter, r *http.Request) {
	withID(w, r, c.service.DeleteClient)
}

func (c *AdminController) deleteUser(w http.ResponseWriter, r *http.Request) {
	withID(w, r, c.service.DeleteUser)
}

func (c *AdminController) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	withID(w, r, c.service.DeleteTransaction)
}

func (c *AdminController) updateTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := pathID[models.TransactionResponse](w, r, start)
	if !ok {
		return
	}
	var req models.UpdateTransactionRequest
	if !decodeJSON[models.TransactionResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.UpdateTransactionDescription(r.Context(), id, req)
	respond(w, r, start, http.StatusOK, response, err)
}

// withID serves the admin endpoints that only take the {id} path variable.
func withID[T any](w http.ResponseWriter, r *http.Request, call func(ctx context.Context, id int64) (commons.Response[T], error)) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := pathID[T](w, r, start)
	if !ok {
		return
	}

	response, err := call(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}
