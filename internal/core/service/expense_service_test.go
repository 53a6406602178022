package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

type stubExpenseRepo struct {
	inserted   []*domain.Expense
	grouped    *ports.GroupedExpenses
	page       *ports.ExpensePage
	lastFilter ports.ExpenseFilter
	groupCalls int
	deleteErr  error
}

func (r *stubExpenseRepo) Insert(_ context.Context, ex *domain.Expense) (string, error) {
	r.inserted = append(r.inserted, ex)
	return "exp-1", nil
}

func (r *stubExpenseRepo) ListGrouped(_ context.Context, filter ports.ExpenseFilter) (*ports.GroupedExpenses, error) {
	r.lastFilter = filter
	r.groupCalls++
	if r.grouped == nil {
		return &ports.GroupedExpenses{Data: []ports.ExpenseGroup{}}, nil
	}
	return r.grouped, nil
}

func (r *stubExpenseRepo) ListPage(_ context.Context, filter ports.ExpenseFilter) (*ports.ExpensePage, error) {
	r.lastFilter = filter
	if r.page == nil {
		return &ports.ExpensePage{Data: []ports.ExpenseRow{}, Total: 0}, nil
	}
	return r.page, nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id string) (*ports.ExpenseDetail, error) {
	return nil, domain.ErrExpenseNotFound
}

func (r *stubExpenseRepo) Delete(_ context.Context, id string) error {
	return r.deleteErr
}

type stubCategoryDirectory struct {
	err error
}

func (d *stubCategoryDirectory) Create(context.Context, ports.CreateCategoryInput) (string, error) {
	return "", nil
}

func (d *stubCategoryDirectory) List(context.Context, ports.CategoryFilter) (*ports.CategoryPage, error) {
	return nil, nil
}

func (d *stubCategoryDirectory) Get(_ context.Context, id string) (*domain.Category, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &domain.Category{ID: id, Name: "Food"}, nil
}

func (d *stubCategoryDirectory) Update(context.Context, string, ports.UpdateCategoryInput) error {
	return nil
}

type stubUserDirectory struct {
	err  error
	user *domain.User
}

func (d *stubUserDirectory) Create(context.Context, ports.CreateUserInput) (string, error) {
	return "", nil
}

func (d *stubUserDirectory) List(context.Context, ports.UserFilter) (*ports.UserPage, error) {
	return nil, nil
}

func (d *stubUserDirectory) Get(_ context.Context, id string) (*domain.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &domain.User{ID: id, Username: "alice1"}, nil
}

func (d *stubUserDirectory) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.user != nil && d.user.Email == email {
		clone := *d.user
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (d *stubUserDirectory) Update(context.Context, string, ports.UpdateUserInput) error {
	return nil
}

func (d *stubUserDirectory) Remove(context.Context, string) error {
	return nil
}

type stubReportCache struct {
	entries     map[string]*ports.GroupedExpenses
	invalidated int
}

func newStubReportCache() *stubReportCache {
	return &stubReportCache{entries: make(map[string]*ports.GroupedExpenses)}
}

func (c *stubReportCache) Get(_ context.Context, fingerprint string) (*ports.GroupedExpenses, bool) {
	result, ok := c.entries[fingerprint]
	return result, ok
}

func (c *stubReportCache) Set(_ context.Context, fingerprint string, result *ports.GroupedExpenses) {
	c.entries[fingerprint] = result
}

func (c *stubReportCache) Invalidate(_ context.Context) {
	c.invalidated++
	c.entries = make(map[string]*ports.GroupedExpenses)
}

func newExpenseService(repo *stubExpenseRepo, cats *stubCategoryDirectory, users *stubUserDirectory, cache ports.ReportCache) *ExpenseService {
	return NewExpenseService(repo, cats, users, cache, zerolog.Nop())
}

func TestExpenseService_Create_DanglingCategory(t *testing.T) {
	repo := &stubExpenseRepo{}
	svc := newExpenseService(repo, &stubCategoryDirectory{err: domain.ErrCategoryNotFound}, &stubUserDirectory{}, nil)

	_, err := svc.Create(context.Background(), ports.CreateExpenseInput{CategoryID: "c1", UserID: "u1"})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("no expense may be persisted on a dangling reference")
	}
}

func TestExpenseService_Create_DanglingUser(t *testing.T) {
	repo := &stubExpenseRepo{}
	svc := newExpenseService(repo, &stubCategoryDirectory{}, &stubUserDirectory{err: domain.ErrUserNotFound}, nil)

	_, err := svc.Create(context.Background(), ports.CreateExpenseInput{CategoryID: "c1", UserID: "u1"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("no expense may be persisted on a dangling reference")
	}
}

func TestExpenseService_Create_NormalizesAmount(t *testing.T) {
	repo := &stubExpenseRepo{}
	cache := newStubReportCache()
	svc := newExpenseService(repo, &stubCategoryDirectory{}, &stubUserDirectory{}, cache)

	_, err := svc.Create(context.Background(), ports.CreateExpenseInput{
		Amount:     3.14159,
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		CategoryID: "c1",
		UserID:     "u1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := repo.inserted[0].Amount; got != 3.14 {
		t.Fatalf("expected amount normalized to 3.14, got %v", got)
	}
	if cache.invalidated != 1 {
		t.Fatalf("a write must invalidate cached reports")
	}
}

func TestExpenseService_List_ShapeSelection(t *testing.T) {
	repo := &stubExpenseRepo{
		grouped: &ports.GroupedExpenses{Data: []ports.ExpenseGroup{{Category: "Food", TotalAmount: 12.5}}},
		page:    &ports.ExpensePage{Data: []ports.ExpenseRow{{ID: "e1"}}, Total: 1},
	}
	svc := newExpenseService(repo, &stubCategoryDirectory{}, &stubUserDirectory{}, nil)

	result, err := svc.List(context.Background(), ports.ExpenseFilter{GroupByCategory: true})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if _, ok := result.(*ports.GroupedExpenses); !ok {
		t.Fatalf("group-by flag set: expected *GroupedExpenses, got %T", result)
	}

	result, err = svc.List(context.Background(), ports.ExpenseFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	page, ok := result.(*ports.ExpensePage)
	if !ok {
		t.Fatalf("no flags set: expected *ExpensePage, got %T", result)
	}
	if page.Total != 1 {
		t.Fatalf("unexpected total: %d", page.Total)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got %+v", repo.lastFilter)
	}
}

func TestExpenseService_List_GroupedCacheHit(t *testing.T) {
	repo := &stubExpenseRepo{
		grouped: &ports.GroupedExpenses{Data: []ports.ExpenseGroup{{Username: "alice1", TotalAmount: 40}}},
	}
	cache := newStubReportCache()
	svc := newExpenseService(repo, &stubCategoryDirectory{}, &stubUserDirectory{}, cache)

	filter := ports.ExpenseFilter{GroupByUsername: true}
	if _, err := svc.List(context.Background(), filter); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if _, err := svc.List(context.Background(), filter); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.groupCalls != 1 {
		t.Fatalf("second identical query must be served from cache, repo hit %d times", repo.groupCalls)
	}
}

func TestExpenseService_Remove_NotFound(t *testing.T) {
	repo := &stubExpenseRepo{deleteErr: domain.ErrExpenseNotFound}
	cache := newStubReportCache()
	svc := newExpenseService(repo, &stubCategoryDirectory{}, &stubUserDirectory{}, cache)

	if err := svc.Remove(context.Background(), "missing"); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
	if cache.invalidated != 0 {
		t.Fatalf("failed delete must not invalidate the cache")
	}
}
