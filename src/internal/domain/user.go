package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// User is the identity/credential record behind a login.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	FullName     string
	Email        string
	Active       bool
	CreatedAt    time.Time
}

// Principal is the authenticated caller attached to a request. ClientID is
// zero for principals without a client profile (the administrator).
type Principal struct {
	UserID   int64
	ClientID int64
	Username string
	Role     Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
