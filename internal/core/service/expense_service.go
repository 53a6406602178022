package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

// ExpenseService implements the expense ledger.
type ExpenseService struct {
	repo       ports.ExpenseRepository
	categories ports.CategoryService
	users      ports.UserService
	cache      ports.ReportCache // optional
	log        zerolog.Logger
}

func NewExpenseService(
	repo ports.ExpenseRepository,
	categories ports.CategoryService,
	users ports.UserService,
	cache ports.ReportCache,
	log zerolog.Logger,
) *ExpenseService {
	return &ExpenseService{
		repo:       repo,
		categories: categories,
		users:      users,
		cache:      cache,
		log:        log,
	}
}

// Create resolves both references before writing, so a dangling categoryId or
// userId fails fast with the directory's not-found error and nothing is
// persisted. The check-then-insert sequence is not transactional: a reference
// deleted concurrently between the check and the insert is an accepted race.
func (s *ExpenseService) Create(ctx context.Context, input ports.CreateExpenseInput) (string, error) {
	if _, err := s.categories.Get(ctx, input.CategoryID); err != nil {
		return "", err
	}
	if _, err := s.users.Get(ctx, input.UserID); err != nil {
		return "", err
	}

	id, err := s.repo.Insert(ctx, &domain.Expense{
		Amount:      domain.NormalizeAmount(input.Amount),
		Date:        input.Date,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		UserID:      input.UserID,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to save expense")
		return "", domain.ErrNotSaved
	}

	s.invalidateReports(ctx)
	s.log.Info().Str("id", id).Str("categoryId", input.CategoryID).Str("userId", input.UserID).Msg("expense created")
	return id, nil
}

// List selects the result shape once, from the group-by flags: grouped
// queries return the full bucket list with no pagination, detail queries
// return a page plus the total match count.
func (s *ExpenseService) List(ctx context.Context, filter ports.ExpenseFilter) (ports.ExpenseListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}

	if !filter.GroupByCategory && !filter.GroupByUsername {
		return s.repo.ListPage(ctx, filter)
	}

	fingerprint := groupFingerprint(filter)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, fingerprint); ok {
			return cached, nil
		}
	}

	result, err := s.repo.ListGrouped(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, fingerprint, result)
	}
	return result, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (*ports.ExpenseDetail, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ExpenseService) Remove(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrExpenseNotFound) {
			s.log.Error().Err(err).Str("id", id).Msg("failed to delete expense")
		}
		return err
	}

	s.invalidateReports(ctx)
	return nil
}

func (s *ExpenseService) invalidateReports(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// groupFingerprint identifies a grouped query by every field that affects its
// result.
func groupFingerprint(f ports.ExpenseFilter) string {
	return fmt.Sprintf("c=%s|u=%s|gc=%t|gu=%t|s=%d|e=%d",
		f.Category, f.Username, f.GroupByCategory, f.GroupByUsername,
		f.StartDate.Unix(), f.EndDate.Unix())
}
