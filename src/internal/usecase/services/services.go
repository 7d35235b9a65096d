// Package services implements the ledger use cases: the transaction engine
// and the caller-facing account, transfer, auth and admin services built on it.
package services

import "github.com/aremolina15/minibanco-yunis/src/internal/usecase/service_interfaces"

var (
	_ service_interfaces.AccountService  = (*AccountService)(nil)
	_ service_interfaces.TransferService = (*TransferService)(nil)
	_ service_interfaces.AuthService     = (*AuthService)(nil)
	_ service_interfaces.AdminService    = (*AdminService)(nil)
)
