// Package users stores locally registered accounts.
package users

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, u models.User) error
}
