package rest

import (
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"net/http"
	"strings"
)

type AuthMiddleware struct {
	tokens port.TokenServicePort
}

func NewAuthMiddleware(tokens port.TokenServicePort) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// OptionalSession attaches the caller's session when a valid bearer token is
// present. Public routes never fail because of a missing or bad token.
func (am *AuthMiddleware) OptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		session, err := am.tokens.ValidateToken(r.Context(), tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := contextkeys.ContextWithSession(r.Context(), *session)
		logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"user_id": session.UserID})
		ctx = contextkeys.ContextWithLogger(ctx, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole answers 401 without a session and 403 when the session lacks role.
func (am *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := contextkeys.SessionFromContext(r.Context())
			if !ok {
				WriteJSONError(w, http.StatusUnauthorized, "Authentication required.")
				return
			}
			if session.Role != role {
				contextkeys.LoggerFromContext(r.Context()).Warn("Role check failed", port.Fields{
					"required_role": role,
					"role":          session.Role,
				})
				WriteJSONError(w, http.StatusForbidden, "Forbidden.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(constants.HeaderAuthorization)
	tokenString := strings.TrimPrefix(header, constants.BearerPrefix)
	if header == "" || tokenString == header || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// sessionFrom returns the request session; RequireRole guarantees it on admin routes.
func sessionFrom(r *http.Request) domain.Session {
	session, _ := contextkeys.SessionFromContext(r.Context())
	return session
}
