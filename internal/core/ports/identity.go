package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrUnauthenticated is returned when a token does not resolve to an identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID kernel.ID
}

// IdentityProvider resolves tokens issued by the external identity service.
type IdentityProvider interface {
	ValidateToken(ctx context.Context, token string) (Identity, error)
}
