package commons

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const AccountNumberLength = 10

var accountNumberSpace = big.NewInt(10_000_000_000)

// RandomAccountNumber returns a uniformly random 10-digit numeric string.
func RandomAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpace)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%010d", n.Int64()), nil
}

func IsAccountNumber(value string) bool {
	if len(value) != AccountNumberLength {
		return false
	}
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
