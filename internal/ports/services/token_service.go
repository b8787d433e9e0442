package services

import (
	"context"
	"time"

	"notekeeper/internal/domain/entities"
)

// TokenService mints and validates the bearer tokens the HTTP boundary uses
// to carry the principal.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, principal entities.Principal) (string, time.Time, error)
	ValidateAccessToken(ctx context.Context, token string) (entities.Principal, error)
}
