package port

import (
	"context"
	"marketplace-service/internal/core/domain"
	"time"
)

// TokenServicePort issues and checks session tokens.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, session domain.Session, ttl time.Duration) (string, error)
	// ValidateToken returns domain.ErrTokenInvalid for any token it does not accept.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Session, error)
}
