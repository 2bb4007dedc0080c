package ports

import (
	"context"
	"errors"

	"merchops/internal/domain"
)

// ErrSessionNotFound is returned by SessionStore implementations for
// tokens that are expired, revoked or tampered with. Handlers
// translate it to 401.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore owns session lifecycle. Tokens are opaque to callers;
// the store is responsible for tamper-proofing them.
type SessionStore interface {
	Create(ctx context.Context, user *domain.AuthenticatedUser) (string, error)
	Get(ctx context.Context, token string) (*domain.AuthenticatedUser, error)
	Delete(ctx context.Context, token string) error
}
