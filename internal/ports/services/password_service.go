// Package services defines service interfaces used by the application layer.
package services

import "context"

// PasswordService is the one-way credential codec. Hash never round-trips;
// Verify reports a mismatch as (false, nil) and reserves errors for malformed
// input or digest.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}
