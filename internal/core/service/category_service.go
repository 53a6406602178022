package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

// CategoryService implements the category directory.
type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (string, error) {
	id, err := s.repo.Insert(ctx, &domain.Category{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to save category")
		return "", domain.ErrNotSaved
	}

	s.log.Info().Str("id", id).Str("name", input.Name).Msg("category created")
	return id, nil
}

func (s *CategoryService) List(ctx context.Context, filter ports.CategoryFilter) (*ports.CategoryPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, id string, input ports.UpdateCategoryInput) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	update := ports.CategoryUpdate{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.Update(ctx, id, update); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update category")
		return domain.ErrNotSaved
	}
	return nil
}
