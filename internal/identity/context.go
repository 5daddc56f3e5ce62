package identity

import (
	"context"

	"github.com/nalindobhal/blog/internal/db"
)

type userKey struct{}

// NewContext returns a copy of ctx carrying the authenticated user.
func NewContext(ctx context.Context, user *db.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// FromContext returns the authenticated user or nil for anonymous callers.
func FromContext(ctx context.Context) *db.User {
	user, _ := ctx.Value(userKey{}).(*db.User)
	return user
}
