package models

import (
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type ClientResponse struct {
	ID                   int64  `json:"id"`
	UserID               int64  `json:"userId"`
	Username             string `json:"username,omitempty"`
	IdentificationNumber string `json:"identificationNumber"`
	IdentificationType   string `json:"identificationType"`
	FullName             string `json:"fullName"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	RegisteredAt         string `json:"registeredAt"`
}

func NewClientResponse(client domain.ClientWithUsername) ClientResponse {
	return ClientResponse{
		ID:                   client.ID,
		UserID:               client.UserID,
		Username:             client.Username,
		IdentificationNumber: client.IdentificationNumber,
		IdentificationType:   client.IdentificationType,
		FullName:             client.FullName,
		Email:                client.Email,
		Phone:                client.Phone,
		RegisteredAt:         client.RegisteredAt.Format(time.RFC3339),
	}
}

type DeleteResponse struct {
	Resource string `json:"resource"`
	ID       int64  `json:"id"`
	// Cascaded counts the dependent rows removed with the resource.
	Cascaded int64 `json:"cascaded"`
}
