// Package auth carries the authenticated principal through request contexts
// and checks it against the system context.
package auth

import (
	"context"
	"errors"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrGuestAccess = errors.New("guest users cannot access this function")
)

type contextKey struct{}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns 0 when the request is anonymous.
func UserIDFromContext(ctx context.Context) int64 {
	userID, _ := ctx.Value(contextKey{}).(int64)
	return userID
}

// ContextPrincipal reads the current user from the request context.
type ContextPrincipal struct{}

func (ContextPrincipal) CurrentUser(ctx context.Context) (int64, error) {
	userID := UserIDFromContext(ctx)
	if userID <= 0 {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}

// SystemContext admits any logged in user except the guest account.
type SystemContext struct {
	GuestUserID int64
}

func (c SystemContext) ValidateContext(_ context.Context, userID int64) error {
	if userID <= 0 {
		return ErrNotLoggedIn
	}
	if c.GuestUserID > 0 && userID == c.GuestUserID {
		return ErrGuestAccess
	}
	return nil
}
