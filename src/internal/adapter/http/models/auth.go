package models

import (
	"errors"
	"net/mail"
	"strings"
)

const minPasswordLength = 6

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type RegisterRequest struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	FullName             string `json:"fullName"`
	Email                string `json:"email"`
	IdentificationNumber string `json:"identificationNumber"`
	IdentificationType   string `json:"identificationType,omitempty"`
	Phone                string `json:"phone,omitempty"`
}

func (r RegisterRequest) Validate() error {
	var errs []string

	username := strings.TrimSpace(r.Username)
	if username == "" {
		errs = append(errs, "username is required")
	} else if len(username) > 50 {
		errs = append(errs, "username must be at most 50 characters")
	}
	if len(r.Password) < minPasswordLength {
		errs = append(errs, "password must be at least 6 characters")
	}
	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "email is not a valid address")
	}
	identification := strings.TrimSpace(r.IdentificationNumber)
	if identification == "" {
		errs = append(errs, "identificationNumber is required")
	} else if !digitsOnly(identification) {
		errs = append(errs, "identificationNumber must contain digits only")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	ClientID    int64  `json:"clientId,omitempty"`
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
