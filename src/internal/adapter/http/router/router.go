package router

import (
	"net/http"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/middleware"
	"github.com/gorilla/mux"
)

type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router, authMiddleware func(http.Handler) http.Handler)
}

func New(authMiddleware func(http.Handler) http.Handler, registrars ...RouteRegistrar) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)

	router.HandleFunc("/health", health).Methods(http.MethodGet)
	registerSwaggerRoutes(router)

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(router, authMiddleware)
		}
	}

	return router
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
