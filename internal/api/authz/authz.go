package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Identity is the authenticated caller as asserted by the external identity
// provider fronting this service. UserID is the provider's stable user id.
type Identity struct {
	UserID string
}

type identityContextKey struct{}

func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext retrieves the Identity stored in ctx.
// It returns nil if ctx is nil, if no identity is stored, or if the stored
// value has a different type.
func IdentityFromContext(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	identity, ok := ctx.Value(identityContextKey{}).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireUser returns the caller's identity or ErrUnauthenticated.
func RequireUser(ctx context.Context) (*Identity, error) {
	identity := IdentityFromContext(ctx)
	if identity == nil || identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return identity, nil
}

// RequireVenueOwner checks that the caller is the owner of a venue.
// ownerID is the venue's stored owner id.
func RequireVenueOwner(ctx context.Context, ownerID string) error {
	identity, err := RequireUser(ctx)
	if err != nil {
		return err
	}
	if identity.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}
