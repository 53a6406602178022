package ports

import (
	"context"

	"github.com/expensio/expense-tracker/internal/core/domain"
)

// CreateUserInput carries the fields needed to register a user.
type CreateUserInput struct {
	Name     string
	LastName string
	Username string
	Email    string
	Password string // plaintext; hashed by the service before persisting
}

// UpdateUserInput holds a partial user update; nil means "leave as is".
type UpdateUserInput struct {
	Name     *string
	LastName *string
	Username *string
	Email    *string
	Password *string // plaintext; re-hashed only when supplied
}

// UserService defines use-case operations of the user directory.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (string, error)
	List(ctx context.Context, filter UserFilter) (*UserPage, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail includes the password hash. Internal use only (authentication).
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) error
	Remove(ctx context.Context, id string) error
}
