// Package auth implements the credential flows: login, registration and the
// email-code password recovery state machine.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/shike-app/auth-api/internal/domain"
	jwtinfra "github.com/shike-app/auth-api/internal/infrastructure/jwt"
	"github.com/shike-app/auth-api/internal/infrastructure/smtp"
	"github.com/shike-app/auth-api/internal/pkg/id"
	"github.com/shike-app/auth-api/internal/pkg/password"
)

// codeSpace is the size of the verification-code range: six decimal digits,
// zero-padded, drawn uniformly so a code cannot be brute-forced within the
// TTL window at any sane rate limit.
const codeSpace = 1000000

const minPasswordLen = 6

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error)
	Register(ctx context.Context, req domain.RegisterRequest) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	SendRecoveryCode(ctx context.Context, email string) (string, error)
	VerifyRecoveryCode(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

type codeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Take(ctx context.Context, email string) (*domain.VerificationCode, error)
}

type tokenProvider interface {
	SignSession(u *domain.User) (string, error)
	SignReset(email string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type service struct {
	users   userStore
	codes   codeStore
	mailer  smtp.Mailer
	tokens  tokenProvider
	codeTTL time.Duration
}

type ServiceDeps struct {
	UserRepo  userStore
	CodeStore codeStore
	Mailer    smtp.Mailer
	Tokens    tokenProvider
	CodeTTL   time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:   deps.UserRepo,
		codes:   deps.CodeStore,
		mailer:  deps.Mailer,
		tokens:  deps.Tokens,
		codeTTL: deps.CodeTTL,
	}
}

// Login verifies the presented secret against the stored hash and mints a
// session token. Unknown username and wrong password collapse into one
// credential error so the endpoint is not a username oracle.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			// Store outage, not a credential problem.
			return "", nil, err
		}
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.tokens.SignSession(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Register creates a credential record and auto-logs the new user in.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (string, *domain.User, error) {
	// Only a definitive not-found clears a uniqueness check; any other
	// store error aborts so an outage cannot admit a duplicate.
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return "", nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", nil, err
	}
	if req.Email != "" {
		if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
			return "", nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return "", nil, err
		}
	}
	hash, err := password.Hash(req.Password)
	if err != nil {
		return "", nil, err
	}
	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Username:     req.Username,
		Email:        req.Email,
		Nickname:     nickname,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return "", nil, err
	}
	token, err := s.tokens.SignSession(u)
	if err != nil {
		return "", nil, err
	}
	slog.Info("user registered", "user_id", u.UserID, "username", u.Username)
	return token, u, nil
}

// Me returns the profile for an authenticated user.
func (s *service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

// SendRecoveryCode stores a fresh verification code for the address and
// emails it. A new request always overwrites any prior live code. The code
// is returned so the handler can echo it in development builds; when the
// email dispatch fails the stored code stays valid and only the dispatch
// error is surfaced, so retrying the send does not have to regenerate.
func (s *service) SendRecoveryCode(ctx context.Context, email string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("email not registered: %w", domain.ErrNotFound)
	}
	code, err := newCode()
	if err != nil {
		return "", err
	}
	if err := s.codes.Put(ctx, email, code, s.codeTTL); err != nil {
		return "", err
	}
	if err := s.mailer.SendEmail(email, smtp.VerificationCodeSubject, smtp.VerificationCodeBody(code)); err != nil {
		slog.Warn("verification code email failed", "err", err)
		return "", fmt.Errorf("failed to send verification code: %v", err)
	}
	return code, nil
}

// VerifyRecoveryCode consumes the stored code for the address and, on a
// match, exchanges it for a short-lived reset authorization. The entry is
// taken before comparison: one attempt per sent code, and two racing
// verify requests cannot both succeed.
func (s *service) VerifyRecoveryCode(ctx context.Context, email, code string) (string, error) {
	entry, err := s.codes.Take(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			// The store being unreachable is not the client's fault; the
			// entry may well still be live for a retry.
			return "", err
		}
		return "", fmt.Errorf("verification code expired or missing: %w", domain.ErrBadRequest)
	}
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return "", fmt.Errorf("incorrect verification code: %w", domain.ErrBadRequest)
	}
	return s.tokens.SignReset(email)
}

// ResetPassword applies a new secret for the address embedded in the reset
// authorization. The address never comes from client input, so a client
// cannot reset an account other than the one that was verified.
func (s *service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := s.tokens.Verify(resetToken)
	if err != nil {
		if errors.Is(err, jwtinfra.ErrTokenExpired) {
			return fmt.Errorf("reset token expired: %w", domain.ErrBadRequest)
		}
		return fmt.Errorf("invalid reset token: %w", domain.ErrBadRequest)
	}
	if claims.Purpose != jwtinfra.PurposePasswordReset {
		return fmt.Errorf("invalid reset token: %w", domain.ErrBadRequest)
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrBadRequest)
	}
	u, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("account no longer exists: %w", domain.ErrNotFound)
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, u.UserID, hash); err != nil {
		return err
	}
	slog.Info("password reset applied", "user_id", u.UserID)
	return nil
}

func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
