package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shike-app/auth-api/internal/domain"
)

// Token purposes. Every verifier caller must check the purpose it expects;
// the provider only guarantees the signature and expiry.
const (
	PurposeSession       = "session"
	PurposePasswordReset = "password_reset"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims holds the JWT payload fields. UserID and Username are set on
// session tokens; Email is set on password-reset tokens.
type Claims struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a process-wide secret.
type Provider struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewProvider builds a provider. Reset authorizations must be strictly
// shorter-lived than session tokens.
func NewProvider(secret string, sessionTTL, resetTTL time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if resetTTL >= sessionTTL {
		return nil, fmt.Errorf("reset TTL %s must be shorter than session TTL %s", resetTTL, sessionTTL)
	}
	return &Provider{secret: []byte(secret), sessionTTL: sessionTTL, resetTTL: resetTTL}, nil
}

// SignSession mints a bearer session token for an authenticated user.
func (p *Provider) SignSession(u *domain.User) (string, error) {
	return p.sign(Claims{
		UserID:   u.UserID,
		Username: u.Username,
		Purpose:  PurposeSession,
	}, p.sessionTTL)
}

// SignReset mints a short-lived reset authorization bound to the recovery
// address that was just verified.
func (p *Provider) SignReset(email string) (string, error) {
	return p.sign(Claims{
		Email:   email,
		Purpose: PurposePasswordReset,
	}, p.resetTTL)
}

func (p *Provider) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Verify checks the signature and expiry and returns the embedded claims.
// It does not check the purpose; callers gate on Claims.Purpose themselves.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
