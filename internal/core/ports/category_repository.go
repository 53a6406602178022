package ports

import (
	"context"
	"time"

	"github.com/expensio/expense-tracker/internal/core/domain"
)

// CategoryFilter carries all query parameters for listing categories.
type CategoryFilter struct {
	Name        string // optional: case-insensitive substring
	Description string // optional: case-insensitive substring
	StartDate   time.Time
	EndDate     time.Time
	Page        int64 // 1-based
	Limit       int64
}

// CategoryPage is a page of categories plus the total match count.
type CategoryPage struct {
	Data  []domain.Category
	Total int64
}

// CategoryUpdate holds the fields of a partial update; nil means "leave as is".
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// CategoryRepository defines persistence operations over the categories collection.
type CategoryRepository interface {
	Insert(ctx context.Context, cat *domain.Category) (string, error)
	// FindAll returns categories sorted by name then id.
	FindAll(ctx context.Context, filter CategoryFilter) (*CategoryPage, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, id string, update CategoryUpdate) error
}
