package service

import (
	"context"
	"errors"

	"github.com/creamcroissant/foodpos/internal/auth/token"
	"github.com/creamcroissant/foodpos/internal/support/hash"
)

// AuthService logs the restaurant admin in and verifies bearer tokens.
// There is a single admin identity; its bcrypt hash comes from config.
type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, rawToken string) (*token.Claims, error)
}

type authService struct {
	passwordHash string
	hasher       hash.Hasher
	tokens       *token.Manager
}

// NewAuthService constructs the auth service.
func NewAuthService(passwordHash string, hasher hash.Hasher, tokens *token.Manager) AuthService {
	return &authService{passwordHash: passwordHash, hasher: hasher, tokens: tokens}
}

func (s *authService) Login(_ context.Context, password string) (string, error) {
	if s.passwordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		if errors.Is(err, hash.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return s.tokens.Issue("admin", "admin")
}

func (s *authService) Verify(_ context.Context, rawToken string) (*token.Claims, error) {
	return s.tokens.Verify(rawToken)
}
