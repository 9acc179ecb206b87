package contextkeys

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// ContextWithSession stores the authenticated caller in ctx.
func ContextWithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext reports false for anonymous requests.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	return session, ok
}
