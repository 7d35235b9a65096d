package service_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/models"
	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.TokenResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.TokenResponse], error)
	ParseToken(token string) (domain.Principal, error)
}
