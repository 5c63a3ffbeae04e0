package auth

import (
	"context"
	"errors"
)

type contextKey string

const userKey = contextKey("user")

// ErrNoUser is returned when a context carries no authenticated caller.
var ErrNoUser = errors.New("user not found in context")

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID   int
	Username string
}

// WithPrincipal stores the caller in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, userKey, p)
}

// PrincipalFromContext returns the caller stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(userKey).(Principal)
	if !ok {
		return Principal{}, ErrNoUser
	}
	return p, nil
}
