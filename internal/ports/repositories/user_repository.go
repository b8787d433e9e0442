// Package repositories defines the persistence interfaces of the service.
package repositories

import (
	"context"

	"notekeeper/internal/domain/entities"
)

// UserRepository is the record store for user accounts. Email uniqueness is
// enforced by the storage layer; Create returns entities.ErrUserAlreadyExists
// when the constraint is violated.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, email string) error
}
