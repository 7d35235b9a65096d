package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/middleware"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
	"github.com/gorilla/mux"
)

const defaultPageLimit = 100

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch commons.Kind(err) {
	case commons.ErrNotFound:
		return http.StatusNotFound
	case commons.ErrInvalidArgument, commons.ErrInvalidState:
		return http.StatusBadRequest
	case commons.ErrInsufficientFunds:
		return http.StatusUnprocessableEntity
	case commons.ErrPermissionDenied:
		return http.StatusForbidden
	case commons.ErrUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respond writes the service result, choosing the status from err.
func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, status int, response commons.Response[T], err error) {
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status = statusFor(err)
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func fail[T any](w http.ResponseWriter, r *http.Request, start time.Time, status int, message string, details ...string) {
	response := commons.ErrorResponse[T](message, details...)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request, start time.Time, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logError(r, err, nil)
		fail[T](w, r, start, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	logRequest(r, req)
	return true
}

func principalOf[T any](w http.ResponseWriter, r *http.Request, start time.Time) (domain.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		fail[T](w, r, start, http.StatusUnauthorized, "unauthorized")
	}
	return principal, ok
}

func pathID[T any](w http.ResponseWriter, r *http.Request, start time.Time) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fail[T](w, r, start, http.StatusBadRequest, "validation failed", fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

// pageParams reads skip/limit query parameters.
func pageParams[T any](w http.ResponseWriter, r *http.Request, start time.Time) (int, int, bool) {
	skip, limit := 0, defaultPageLimit
	query := r.URL.Query()

	if raw := query.Get("skip"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			fail[T](w, r, start, http.StatusBadRequest, "validation failed", "skip must be a non-negative integer")
			return 0, 0, false
		}
		skip = value
	}
	if raw := query.Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			fail[T](w, r, start, http.StatusBadRequest, "validation failed", "limit must be a positive integer")
			return 0, 0, false
		}
		limit = value
	}
	return skip, limit, true
}

func protect(handler http.HandlerFunc, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware == nil {
		return handler
	}
	return authMiddleware(handler)
}
