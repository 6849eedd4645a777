package users

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

// InMemoryRepository keeps accounts for the lifetime of the process.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]models.User)}
}

func (r *InMemoryRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *InMemoryRepository) Insert(_ context.Context, u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Email]; ok {
		return ErrAlreadyExists
	}
	r.users[u.Email] = cloneUser(u)
	return nil
}

func cloneUser(u models.User) models.User {
	u.Salt = slices.Clone(u.Salt)
	u.Verifier = slices.Clone(u.Verifier)
	return u
}
