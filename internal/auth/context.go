package auth

import (
	"context"

	"github.com/vitrine/vitrine/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// sessionContextKey is the context key for storing the authenticated session.
const sessionContextKey contextKey = "session"

// ContextWithSession adds the authenticated session to the context.
func ContextWithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext retrieves the session from the context.
// Returns nil if the request is unauthenticated.
func SessionFromContext(ctx context.Context) *model.Session {
	s, ok := ctx.Value(sessionContextKey).(*model.Session)
	if !ok {
		return nil
	}
	return s
}

// IsAuthenticated reports whether the request carries a valid session.
// Handlers only ever consume this boolean; credential checks live in the
// middleware.
func IsAuthenticated(ctx context.Context) bool {
	return SessionFromContext(ctx) != nil
}
