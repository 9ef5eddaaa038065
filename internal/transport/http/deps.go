package http

import (
	"context"
	"time"

	"github.com/shike-app/auth-api/internal/domain"
	jwtinfra "github.com/shike-app/auth-api/internal/infrastructure/jwt"
	"github.com/shike-app/auth-api/internal/infrastructure/smtp"
)

// UserRepository is the minimal interface the router requires from the user
// record store.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

// CodeStore is the minimal interface the router requires from a
// verification-code store. Both the in-memory and the Redis-backed store
// satisfy it.
type CodeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (*domain.VerificationCode, error)
	Take(ctx context.Context, email string) (*domain.VerificationCode, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	CodeStore   CodeStore
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
