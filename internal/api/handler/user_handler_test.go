package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

func TestCreateUserReturnsID(t *testing.T) {
	var got ports.CreateUserInput
	svc := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (string, error) {
			got = input
			return "64f000000000000000000001", nil
		},
	}

	e := newEcho()
	e.POST("/api/users", NewUserHandler(svc).Create)

	body := `{
		"name": "Ada",
		"lastName": "Lovelace",
		"username": "ada_l",
		"email": "ada@example.com",
		"password": "supersecret1"
	}`
	rec := doRequest(e, http.MethodPost, "/api/users", strings.NewReader(body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["id"] != "64f000000000000000000001" {
		t.Errorf("id = %v, want 64f000000000000000000001", resp["id"])
	}
	if got.Username != "ada_l" || got.Password != "supersecret1" {
		t.Errorf("input = %+v, want username ada_l and plaintext password forwarded", got)
	}
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	called := false
	svc := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (string, error) {
			called = true
			return "", nil
		},
	}

	e := newEcho()
	e.POST("/api/users", NewUserHandler(svc).Create)

	body := `{
		"name": "Ada",
		"lastName": "Lovelace",
		"username": "ada_l",
		"email": "not-an-email",
		"password": "supersecret1"
	}`
	rec := doRequest(e, http.MethodPost, "/api/users", strings.NewReader(body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if called {
		t.Error("service called despite failed validation")
	}
}

func TestListUsersForwardsQueryFilter(t *testing.T) {
	var got ports.UserFilter
	svc := &stubUserService{
		listFn: func(ctx context.Context, filter ports.UserFilter) (*ports.UserPage, error) {
			got = filter
			return &ports.UserPage{
				Data: []domain.User{{
					ID:       "64f000000000000000000001",
					Name:     "Ada",
					LastName: "Lovelace",
					Username: "ada_l",
					Email:    "ada@example.com",
				}},
				Total: 1,
			}, nil
		},
	}

	e := newEcho()
	e.GET("/api/users", NewUserHandler(svc).List)

	rec := doRequest(e, http.MethodGet, "/api/users?username=ada&skip=10&limit=5", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if got.Username != "ada" || got.Skip != 10 || got.Limit != 5 {
		t.Errorf("filter = %+v, want username ada, skip 10, limit 5", got)
	}
	resp := decodeBody(t, rec)
	rows := resp["data"].([]any)
	row := rows[0].(map[string]any)
	if _, ok := row["password"]; ok {
		t.Error("password leaked in user listing")
	}
	if row["username"] != "ada_l" {
		t.Errorf("username = %v, want ada_l", row["username"])
	}
}

func TestUpdateUserPassesOnlySuppliedFields(t *testing.T) {
	var gotID string
	var got ports.UpdateUserInput
	svc := &stubUserService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateUserInput) error {
			gotID = id
			got = input
			return nil
		},
	}

	e := newEcho()
	e.PATCH("/api/users/:id", NewUserHandler(svc).Update)

	body := `{"lastName": "Byron"}`
	rec := doRequest(e, http.MethodPatch, "/api/users/64f000000000000000000001", strings.NewReader(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if gotID != "64f000000000000000000001" {
		t.Errorf("id = %s, want 64f000000000000000000001", gotID)
	}
	if got.LastName == nil || *got.LastName != "Byron" {
		t.Errorf("lastName = %v, want Byron", got.LastName)
	}
	if got.Name != nil || got.Username != nil || got.Email != nil || got.Password != nil {
		t.Errorf("input = %+v, want every omitted field nil", got)
	}
}

func TestUpdateUserRejectsMalformedID(t *testing.T) {
	svc := &stubUserService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateUserInput) error {
			t.Fatal("service called despite malformed id")
			return nil
		},
	}

	e := newEcho()
	e.PATCH("/api/users/:id", NewUserHandler(svc).Update)

	rec := doRequest(e, http.MethodPatch, "/api/users/abc", strings.NewReader(`{"name":"x"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteUserNotFoundReturns404(t *testing.T) {
	svc := &stubUserService{
		removeFn: func(ctx context.Context, id string) error {
			return domain.ErrUserNotFound
		},
	}

	e := newEcho()
	e.DELETE("/api/users/:id", NewUserHandler(svc).Delete)

	rec := doRequest(e, http.MethodDelete, "/api/users/64f000000000000000000001", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
