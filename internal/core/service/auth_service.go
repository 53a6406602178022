package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

// AuthService verifies credentials against the user directory and issues
// bearer tokens.
type AuthService struct {
	users  ports.UserService
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserService, hasher ports.PasswordHasher, issuer ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, issuer: issuer, log: log}
}

// SignIn returns domain.ErrInvalidCredentials for an unknown email and for a
// password mismatch alike, so the two cases are indistinguishable from the
// outside.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ports.TokenClaims{
		ID:       user.ID,
		Name:     user.Name,
		LastName: user.LastName,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("failed to sign token")
		return nil, err
	}

	sanitized := *user
	sanitized.PasswordHash = ""

	s.log.Info().Str("id", user.ID).Str("username", user.Username).Msg("user signed in")
	return &ports.SignInResult{User: sanitized, Token: token}, nil
}
