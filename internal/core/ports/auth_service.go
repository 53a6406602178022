package ports

import (
	"context"

	"github.com/expensio/expense-tracker/internal/core/domain"
)

// SignInResult is the sanitized user plus its bearer token.
type SignInResult struct {
	User  domain.User
	Token string
}

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
}
