package memory

import (
	"context"
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type ClientRepository struct {
	unit
}

func (r *ClientRepository) Create(_ context.Context, client domain.Client) (domain.Client, error) {
	if err := r.checkWritable(); err != nil {
		return domain.Client{}, err
	}
	for _, existing := range r.st.clients {
		if existing.IdentificationNumber == client.IdentificationNumber {
			return domain.Client{}, fmt.Errorf("%w: identification number already registered", commons.ErrInvalidArgument)
		}
		if existing.UserID == client.UserID {
			return domain.Client{}, fmt.Errorf("%w: user already has a client profile", commons.ErrInvalidArgument)
		}
	}
	if _, ok := r.st.users[client.UserID]; !ok {
		return domain.Client{}, fmt.Errorf("create client: user %d does not exist", client.UserID)
	}

	r.st.lastClientID++
	client.ID = r.st.lastClientID
	client.RegisteredAt = r.st.stamp(r.now())
	r.st.clients[client.ID] = client
	return client, nil
}

func (r *ClientRepository) GetByID(_ context.Context, id int64) (domain.Client, error) {
	client, ok := r.st.clients[id]
	if !ok {
		return domain.Client{}, fmt.Errorf("client: %w", commons.ErrNotFound)
	}
	return client, nil
}

func (r *ClientRepository) GetByUserID(_ context.Context, userID int64) (domain.Client, error) {
	for _, client := range r.st.clients {
		if client.UserID == userID {
			return client, nil
		}
	}
	return domain.Client{}, fmt.Errorf("client: %w", commons.ErrNotFound)
}

func (r *ClientRepository) ExistsByIdentification(_ context.Context, identificationNumber string) (bool, error) {
	for _, client := range r.st.clients {
		if client.IdentificationNumber == identificationNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *ClientRepository) List(_ context.Context, offset int, limit int) ([]domain.ClientWithUsername, error) {
	all := make([]domain.ClientWithUsername, 0, len(r.st.clients))
	for _, id := range sortedIDs(r.st.clients) {
		client := r.st.clients[id]
		all = append(all, domain.ClientWithUsername{
			Client:   client,
			Username: r.st.users[client.UserID].Username,
		})
	}
	return page(all, offset, limit), nil
}

func (r *ClientRepository) Delete(_ context.Context, id int64) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if _, ok := r.st.clients[id]; !ok {
		return fmt.Errorf("client %d: %w", id, commons.ErrNotFound)
	}
	for _, account := range r.st.accounts {
		if account.ClientID == id {
			return fmt.Errorf("delete client %d: accounts still reference it", id)
		}
	}
	delete(r.st.clients, id)
	return nil
}
