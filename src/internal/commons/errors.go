package commons

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidState      = errors.New("invalid state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnauthorized      = errors.New("unauthorized")

	// ErrAccountNumberTaken is returned by account creation when the number
	// was reserved by another writer first.
	ErrAccountNumberTaken = errors.New("account number already taken")
)

// Kind reports which of the exported error kinds err wraps, or nil.
func Kind(err error) error {
	for _, kind := range []error{
		ErrNotFound,
		ErrInvalidArgument,
		ErrInvalidState,
		ErrInsufficientFunds,
		ErrPermissionDenied,
		ErrUnauthorized,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
