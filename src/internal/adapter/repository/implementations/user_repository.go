package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
)

type UserRepository struct {
	db querier
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	logger.Info("user repository create", logger.Fields{
		"username": user.Username,
		"role":     user.Role,
	})

	const query = `
INSERT INTO users (
	username,
	password_hash,
	role,
	full_name,
	email,
	active
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Email,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("%w: username already exists", commons.ErrInvalidArgument)
		}
		logger.Error("user repository create failed", err, logger.Fields{
			"username": user.Username,
		})
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user repository create success", logger.Fields{"userId": user.ID})
	return user, nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (domain.User, error) {
	query := `
SELECT id, username, password_hash, role, full_name, email, active, created_at
FROM users
WHERE ` + where

	var user domain.User
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&user.Email,
		&user.Active,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user: %w", commons.ErrNotFound)
		}
		logger.Error("user repository get failed", err, nil)
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, "username = $1", username)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	logger.Info("user repository delete", logger.Fields{"userId": id})

	rows, err := execRequiredRows(ctx, r.db, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Error("user repository delete failed", err, logger.Fields{"userId": id})
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d: %w", id, commons.ErrNotFound)
	}
	return nil
}
