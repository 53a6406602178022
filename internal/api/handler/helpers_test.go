package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

// newEcho returns an Echo instance wired like the real router: validator set,
// domain errors mapped to status codes via the error handler in package api.
// To avoid an import cycle the mapping is reproduced minimally here.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := err.Error()
		switch {
		case err == domain.ErrInvalidCredentials:
			code = http.StatusUnauthorized
		case err == domain.ErrUserNotFound, err == domain.ErrCategoryNotFound, err == domain.ErrExpenseNotFound:
			code = http.StatusNotFound
		case err == domain.ErrNotSaved:
			code = http.StatusBadRequest
		default:
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
				msg = he.Message.(string)
			}
		}
		_ = c.JSON(code, map[string]string{"error": msg})
	}
	return e
}

func doRequest(e *echo.Echo, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	return resp
}

// --- Service stubs ---

type stubAuthService struct {
	signInFn func(ctx context.Context, email, password string) (*ports.SignInResult, error)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	return s.signInFn(ctx, email, password)
}

type stubUserService struct {
	createFn func(ctx context.Context, input ports.CreateUserInput) (string, error)
	listFn   func(ctx context.Context, filter ports.UserFilter) (*ports.UserPage, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateUserInput) error
	removeFn func(ctx context.Context, id string) error
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) List(ctx context.Context, filter ports.UserFilter) (*ports.UserPage, error) {
	return s.listFn(ctx, filter)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) error {
	return s.updateFn(ctx, id, input)
}

func (s *stubUserService) Remove(ctx context.Context, id string) error {
	return s.removeFn(ctx, id)
}

type stubCategoryService struct {
	createFn func(ctx context.Context, input ports.CreateCategoryInput) (string, error)
	listFn   func(ctx context.Context, filter ports.CategoryFilter) (*ports.CategoryPage, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateCategoryInput) error
}

func (s *stubCategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubCategoryService) List(ctx context.Context, filter ports.CategoryFilter) (*ports.CategoryPage, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return nil, domain.ErrCategoryNotFound
}

func (s *stubCategoryService) Update(ctx context.Context, id string, input ports.UpdateCategoryInput) error {
	return s.updateFn(ctx, id, input)
}

type stubExpenseService struct {
	createFn func(ctx context.Context, input ports.CreateExpenseInput) (string, error)
	listFn   func(ctx context.Context, filter ports.ExpenseFilter) (ports.ExpenseListResult, error)
	getFn    func(ctx context.Context, id string) (*ports.ExpenseDetail, error)
	removeFn func(ctx context.Context, id string) error
}

func (s *stubExpenseService) Create(ctx context.Context, input ports.CreateExpenseInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubExpenseService) List(ctx context.Context, filter ports.ExpenseFilter) (ports.ExpenseListResult, error) {
	return s.listFn(ctx, filter)
}

func (s *stubExpenseService) Get(ctx context.Context, id string) (*ports.ExpenseDetail, error) {
	return s.getFn(ctx, id)
}

func (s *stubExpenseService) Remove(ctx context.Context, id string) error {
	return s.removeFn(ctx, id)
}
