package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Colección de usuarios.
const CollectionUsers = "users"

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa UserRepository sobre el record store.
type UserRepo struct {
	store Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(store Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal usuario: %w", err)
	}
	return r.store.Create(ctx, CollectionUsers, user.ID, doc)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.store.Get(ctx, CollectionUsers, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	var u entity.User
	if err := json.Unmarshal(doc, &u); err != nil {
		return nil, fmt.Errorf("unmarshal usuario %s: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	docs, err := r.store.GetAll(ctx, CollectionUsers)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		var u entity.User
		if err := json.Unmarshal(d.Data, &u); err != nil {
			return nil, fmt.Errorf("unmarshal usuario %s: %w", d.ID, err)
		}
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}
