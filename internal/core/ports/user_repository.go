package ports

import (
	"context"
	"time"

	"github.com/expensio/expense-tracker/internal/core/domain"
)

// UserFilter carries all query parameters for listing users.
type UserFilter struct {
	FullName  string    // optional: case-insensitive substring on name OR lastName
	Username  string    // optional: case-insensitive substring
	Email     string    // optional: case-insensitive substring
	StartDate time.Time // creation-time range; applied only when both bounds set
	EndDate   time.Time
	Skip      int64 // 0-based offset
	Limit     int64 // max rows per page
}

// UserPage is a page of users plus the total match count ignoring skip/limit.
type UserPage struct {
	Data  []domain.User
	Total int64
}

// UserUpdate holds the fields of a partial update; nil means "leave as is".
type UserUpdate struct {
	Name     *string
	LastName *string
	Username *string
	Email    *string
	Password *string // already hashed by the service when non-nil
}

// UserRepository defines persistence operations over the users collection.
type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) (string, error)
	// FindAll returns users sorted by lastName, name, id for stable pagination.
	// Returned users carry only name/lastName/username/email.
	FindAll(ctx context.Context, filter UserFilter) (*UserPage, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail is an exact match and includes the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) error
	// Delete hard-deletes and returns domain.ErrUserNotFound when nothing matched.
	Delete(ctx context.Context, id string) error
}
