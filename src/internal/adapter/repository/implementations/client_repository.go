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

type ClientRepository struct {
	db querier
}

func NewClientRepository(db querier) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	logger.Info("client repository create", logger.Fields{
		"userId":               client.UserID,
		"identificationNumber": client.IdentificationNumber,
	})

	const query = `
INSERT INTO clients (
	user_id,
	identification_number,
	identification_type,
	full_name,
	email,
	phone
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, registered_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		client.UserID,
		client.IdentificationNumber,
		client.IdentificationType,
		client.FullName,
		client.Email,
		client.Phone,
	).Scan(&client.ID, &client.RegisteredAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Client{}, fmt.Errorf("%w: identification number already registered", commons.ErrInvalidArgument)
		}
		logger.Error("client repository create failed", err, logger.Fields{
			"identificationNumber": client.IdentificationNumber,
		})
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	logger.Info("client repository create success", logger.Fields{"clientId": client.ID})
	return client, nil
}

const selectClient = `
SELECT id, user_id, identification_number, identification_type, full_name, email, phone, registered_at
FROM clients`

func scanClient(row interface{ Scan(dest ...any) error }, extra ...any) (domain.Client, error) {
	var client domain.Client
	dest := []any{
		&client.ID,
		&client.UserID,
		&client.IdentificationNumber,
		&client.IdentificationType,
		&client.FullName,
		&client.Email,
		&client.Phone,
		&client.RegisteredAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return client, err
}

func (r *ClientRepository) getOne(ctx context.Context, query string, arg int64) (domain.Client, error) {
	client, err := scanClient(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, fmt.Errorf("client: %w", commons.ErrNotFound)
		}
		logger.Error("client repository get failed", err, logger.Fields{"value": arg})
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	return r.getOne(ctx, selectClient+` WHERE id = $1`, id)
}

func (r *ClientRepository) GetByUserID(ctx context.Context, userID int64) (domain.Client, error) {
	return r.getOne(ctx, selectClient+` WHERE user_id = $1`, userID)
}

func (r *ClientRepository) ExistsByIdentification(ctx context.Context, identificationNumber string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE identification_number = $1)`, identificationNumber).Scan(&exists); err != nil {
		logger.Error("client repository exists by identification failed", err, nil)
		return false, fmt.Errorf("check client identification: %w", err)
	}
	return exists, nil
}

func (r *ClientRepository) List(ctx context.Context, offset int, limit int) ([]domain.ClientWithUsername, error) {
	offset, limit = pageBounds(offset, limit)

	const query = `
SELECT c.id, c.user_id, c.identification_number, c.identification_type, c.full_name, c.email, c.phone, c.registered_at,
       COALESCE(u.username, '')
FROM clients c
LEFT JOIN users u ON u.id = c.user_id
ORDER BY c.id
OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		logger.Error("client repository list failed", err, nil)
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ClientWithUsername, 0)
	for rows.Next() {
		var username string
		client, err := scanClient(rows, &username)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, domain.ClientWithUsername{Client: client, Username: username})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return out, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	logger.Info("client repository delete", logger.Fields{"clientId": id})

	rows, err := execRequiredRows(ctx, r.db, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		logger.Error("client repository delete failed", err, logger.Fields{"clientId": id})
		return fmt.Errorf("delete client: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("client %d: %w", id, commons.ErrNotFound)
	}
	return nil
}
