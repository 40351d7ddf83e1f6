package security

import (
	"context"

	"studiofin-backend/internal/domain"
)

type identityKey struct{}

// WithIdentity attaches the authenticated identity to the request context.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the authenticated identity, or nil when the
// request never passed authentication.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	if !ok {
		return nil
	}
	return &identity
}

// ContextResolver resolves sessions from the request context populated by the
// auth middleware. It is the SessionResolver the action pipeline runs with.
type ContextResolver struct{}

func (ContextResolver) Resolve(ctx context.Context) (*domain.Identity, error) {
	return IdentityFromContext(ctx), nil
}
