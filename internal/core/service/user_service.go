package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

const defaultPageSize = 10

// UserService implements the user directory.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (string, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		return "", domain.ErrNotSaved
	}

	id, err := s.repo.Insert(ctx, &domain.User{
		Name:         input.Name,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// Duplicate unique fields land here too; the caller only sees the
		// generic save failure.
		s.log.Error().Err(err).Str("username", input.Username).Msg("failed to save user")
		return "", domain.ErrNotSaved
	}

	s.log.Info().Str("id", id).Str("username", input.Username).Msg("user created")
	return id, nil
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) (*ports.UserPage, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	update := ports.UserUpdate{
		Name:     input.Name,
		LastName: input.LastName,
		Username: input.Username,
		Email:    input.Email,
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to hash password")
			return domain.ErrNotSaved
		}
		update.Password = &hash
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update user")
		return domain.ErrNotSaved
	}
	return nil
}

func (s *UserService) Remove(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.log.Error().Err(err).Str("id", id).Msg("failed to delete user")
	}
	return err
}
