package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

// fakeHasher is a deterministic stand-in for the bcrypt hasher.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type stubUserRepo struct {
	users      map[string]*domain.User
	nextID     int
	insertErr  error
	lastFilter ports.UserFilter
	lastUpdate ports.UserUpdate
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (string, error) {
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.nextID++
	id := fmt.Sprintf("user-%d", r.nextID)
	clone := *u
	clone.ID = id
	r.users[id] = &clone
	return id, nil
}

func (r *stubUserRepo) FindAll(_ context.Context, filter ports.UserFilter) (*ports.UserPage, error) {
	r.lastFilter = filter
	return &ports.UserPage{Data: []domain.User{}, Total: 0}, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) error {
	r.lastUpdate = update
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, fakeHasher{}, zerolog.Nop())

	id, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Alice",
		LastName: "Smith",
		Username: "alice1",
		Email:    "alice@example.com",
		Password: "abcdefghij",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored := repo.users[id]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "abcdefghij" {
		t.Fatalf("password stored in plaintext")
	}
	if stored.PasswordHash != "hashed:abcdefghij" {
		t.Fatalf("unexpected hash: %s", stored.PasswordHash)
	}
}

func TestUserService_Create_MasksStoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.insertErr = errors.New("E11000 duplicate key")
	svc := NewUserService(repo, fakeHasher{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "bob", Password: "x"})
	if !errors.Is(err, domain.ErrNotSaved) {
		t.Fatalf("expected ErrNotSaved, got %v", err)
	}
}

func TestUserService_List_Defaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, fakeHasher{}, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.UserFilter{}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastFilter.Skip != 0 || repo.lastFilter.Limit != 10 {
		t.Fatalf("expected defaults skip=0 limit=10, got %+v", repo.lastFilter)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, fakeHasher{}, zerolog.Nop())

	err := svc.Update(context.Background(), "missing", ports.UpdateUserInput{})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_RehashOnlyWhenPasswordSupplied(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, fakeHasher{}, zerolog.Nop())

	id, _ := svc.Create(context.Background(), ports.CreateUserInput{Username: "carol", Password: "0123456789"})

	name := "Carol"
	if err := svc.Update(context.Background(), id, ports.UpdateUserInput{Name: &name}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if repo.lastUpdate.Password != nil {
		t.Fatalf("password must not be rewritten when not supplied")
	}

	newPassword := "new-password"
	if err := svc.Update(context.Background(), id, ports.UpdateUserInput{Password: &newPassword}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if repo.lastUpdate.Password == nil || *repo.lastUpdate.Password != "hashed:new-password" {
		t.Fatalf("expected re-hashed password, got %v", repo.lastUpdate.Password)
	}
}

func TestUserService_Remove_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, fakeHasher{}, zerolog.Nop())

	if err := svc.Remove(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
