package auth

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/apperr"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	authErrKey
)

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithError returns a context carrying a failed header-extraction result.
// The error is deferred until an operation actually requires authentication,
// so anonymous operations (register, login) still work with a stale token
// in the header.
func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, authErrKey, err)
}

// FromContext returns the identity attached to ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Require returns the identity attached to ctx or an Unauthenticated error.
// Extraction errors recorded at the boundary take precedence so the caller
// sees why their header was rejected.
func Require(ctx context.Context) (Identity, error) {
	if err, ok := ctx.Value(authErrKey).(error); ok && err != nil {
		return Identity{}, err
	}
	if id, ok := FromContext(ctx); ok {
		return id, nil
	}
	return Identity{}, apperr.Unauthenticated("authorization header required")
}
