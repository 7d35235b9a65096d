package memory

import (
	"context"
	"fmt"

	"github.com/aremolina15/minibanco-yunis/src/internal/commons"
	"github.com/aremolina15/minibanco-yunis/src/internal/domain"
)

type UserRepository struct {
	unit
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	if err := r.checkWritable(); err != nil {
		return domain.User{}, err
	}
	for _, existing := range r.st.users {
		if existing.Username == user.Username {
			return domain.User{}, fmt.Errorf("%w: username already exists", commons.ErrInvalidArgument)
		}
	}

	r.st.lastUserID++
	user.ID = r.st.lastUserID
	user.CreatedAt = r.st.stamp(r.now())
	r.st.users[user.ID] = user
	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (domain.User, error) {
	user, ok := r.st.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user: %w", commons.ErrNotFound)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (domain.User, error) {
	for _, user := range r.st.users {
		if user.Username == username {
			return user, nil
		}
	}
	return domain.User{}, fmt.Errorf("user: %w", commons.ErrNotFound)
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if _, ok := r.st.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, commons.ErrNotFound)
	}
	for _, client := range r.st.clients {
		if client.UserID == id {
			return fmt.Errorf("delete user %d: client profile still references it", id)
		}
	}
	delete(r.st.users, id)
	return nil
}
