package services

import (
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
)

// invalid marks a request validation error so callers can map it to 400.
func invalid(err error) error {
	return fmt.Errorf("%w: %s", commons.ErrInvalidArgument, err.Error())
}

// failure builds the error envelope for err. Known error kinds expose their
// message; anything else is reported generically for action.
func failure[T any](err error, action string) commons.Response[T] {
	switch commons.Kind(err) {
	case commons.ErrInvalidArgument:
		return commons.ErrorResponse[T]("validation failed", err.Error())
	case commons.ErrNotFound:
		return commons.ErrorResponse[T]("record not found", err.Error())
	case commons.ErrInvalidState:
		return commons.ErrorResponse[T]("invalid account state", err.Error())
	case commons.ErrInsufficientFunds:
		return commons.ErrorResponse[T]("insufficient funds", err.Error())
	case commons.ErrPermissionDenied:
		return commons.ErrorResponse[T]("permission denied", err.Error())
	case commons.ErrUnauthorized:
		return commons.ErrorResponse[T]("unauthorized", err.Error())
	}
	return commons.ErrorResponse[T]("failed to "+action, "Unable to "+action+" right now")
}
