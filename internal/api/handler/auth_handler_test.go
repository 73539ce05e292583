package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/api"
	"github.com/splitr-dev/splitr-api/internal/api/handler"
	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	updateFn   func(ctx context.Context, callerID, name string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, callerID, name string) (*domain.User, error) {
	return s.updateFn(ctx, callerID, name)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s", name, email)
			}
			return &domain.User{ID: "user_1", Name: name, Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"correcthorse"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "user_1" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must never be serialized")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"name":"Bob","email":"bob@example.com","password":"correcthorse"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Bob","password":"correcthorse"}`},
		{"bad email", `{"name":"Bob","email":"not-an-email","password":"correcthorse"}`},
		{"short password", `{"name":"Bob","email":"bob@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := h.Register(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "jwt-token", &domain.User{ID: "user_1", Email: email}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"email":"alice@example.com","password":"correcthorse"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "jwt-token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(stub)

	body := strings.NewReader(`{"email":"alice@example.com","password":"wrong-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateProfile_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		updateFn: func(ctx context.Context, callerID, name string) (*domain.User, error) {
			if callerID != "user_1" {
				t.Fatalf("caller id not forwarded, got %q", callerID)
			}
			return &domain.User{ID: "user_1", Name: name, Email: "alice@example.com"}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/v1/users/me", strings.NewReader(`{"name":"Alice Cooper"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.Name != "Alice Cooper" {
		t.Errorf("expected updated name in response, got %q", resp.User.Name)
	}
}

func TestAuthHandler_UpdateProfile_MissingName(t *testing.T) {
	e := newTestEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPut, "/v1/users/me", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	err := h.UpdateProfile(c)
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
