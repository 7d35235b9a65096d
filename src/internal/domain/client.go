package domain

import "time"

const DefaultIdentificationType = "CC"

type Client struct {
	ID                   int64
	UserID               int64
	IdentificationNumber string
	IdentificationType   string
	FullName             string
	Email                string
	Phone                string
	RegisteredAt         time.Time
}

type ClientWithUsername struct {
	Client
	Username string
}
