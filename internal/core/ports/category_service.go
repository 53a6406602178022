package ports

import (
	"context"

	"github.com/expensio/expense-tracker/internal/core/domain"
)

// CreateCategoryInput carries the fields needed to create a category.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput holds a partial category update.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// CategoryService defines use-case operations of the category directory.
type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (string, error)
	List(ctx context.Context, filter CategoryFilter) (*CategoryPage, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) error
}
