package controller

import (
	"net/http"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/service_interfaces"
	"github.com/gorilla/mux"
)

type AuthController struct {
	service service_interfaces.AuthService
}

func NewAuthController(service service_interfaces.AuthService) *AuthController {
	return &AuthController{service: service}
}

// RegisterRoutes mounts the public auth endpoints; they are never wrapped.
func (c *AuthController) RegisterRoutes(router *mux.Router, _ func(http.Handler) http.Handler) {
	router.HandleFunc("/auth/login", c.login).Methods(http.MethodPost)
	router.HandleFunc("/auth/register", c.register).Methods(http.MethodPost)
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if !decodeJSON[models.TokenResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Login(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AuthController) register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RegisterRequest
	if !decodeJSON[models.TokenResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Register(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}
