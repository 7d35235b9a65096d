package repo_interfaces

import (
	"context"

	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	GetByID(ctx context.Context, id int64) (domain.Client, error)
	GetByUserID(ctx context.Context, userID int64) (domain.Client, error)
	ExistsByIdentification(ctx context.Context, identificationNumber string) (bool, error)
	List(ctx context.Context, offset int, limit int) ([]domain.ClientWithUsername, error)
	Delete(ctx context.Context, id int64) error
}
