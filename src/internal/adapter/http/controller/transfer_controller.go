package controller

import (
	"net/http"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/service_interfaces"
	"github.com/gorilla/mux"
)

type TransferController struct {
	service service_interfaces.TransferService
}

func NewTransferController(service service_interfaces.TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(router *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	router.Handle("/transactions/transfer", protect(c.transfer, authMiddleware)).Methods(http.MethodPost)
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	principal, ok := principalOf[models.TransferResponse](w, r, start)
	if !ok {
		return
	}
	var req models.TransferRequest
	if !decodeJSON[models.TransferResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.TransferFunds(r.Context(), principal, req)
	respond(w, r, start, http.StatusOK, response, err)
}
