package repo_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}
