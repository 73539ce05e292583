package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/splitr-dev/splitr-api/internal/api/handler"
	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

type stubExpenseService struct {
	createFn  func(ctx context.Context, callerID string, input ports.CreateExpenseInput) (string, error)
	deleteFn  func(ctx context.Context, callerID, expenseID string) error
	betweenFn func(ctx context.Context, callerID, otherUserID string) (*ports.BetweenUsersResult, error)
}

func (s *stubExpenseService) Create(ctx context.Context, callerID string, input ports.CreateExpenseInput) (string, error) {
	return s.createFn(ctx, callerID, input)
}

func (s *stubExpenseService) Delete(ctx context.Context, callerID, expenseID string) error {
	return s.deleteFn(ctx, callerID, expenseID)
}

func (s *stubExpenseService) GetBetweenUsers(ctx context.Context, callerID, otherUserID string) (*ports.BetweenUsersResult, error) {
	return s.betweenFn(ctx, callerID, otherUserID)
}

func TestExpenseHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubExpenseService{
		createFn: func(ctx context.Context, callerID string, input ports.CreateExpenseInput) (string, error) {
			if callerID != "user_1" {
				t.Fatalf("caller id not forwarded, got %q", callerID)
			}
			if input.SplitType != domain.SplitEqual || len(input.ParticipantIDs) != 2 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "exp_1", nil
		},
	}
	h := handler.NewExpenseHandler(stub)

	body := strings.NewReader(`{"description":"dinner","amount":30,"split_type":"equal","participant_ids":["user_1","user_2"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/expenses", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "exp_1" {
		t.Fatalf("expected id exp_1, got %+v", resp)
	}
}

func TestExpenseHandler_Create_MissingClaims(t *testing.T) {
	e := newTestEcho()
	h := handler.NewExpenseHandler(&stubExpenseService{})

	body := strings.NewReader(`{"description":"dinner","amount":30,"split_type":"equal"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/expenses", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestExpenseHandler_Create_ReconciliationErrorBody(t *testing.T) {
	e := newTestEcho()
	stub := &stubExpenseService{
		createFn: func(ctx context.Context, callerID string, input ports.CreateExpenseInput) (string, error) {
			return "", domain.NewReconciliationError("split amounts do not add up to the expense total", 40, 35)
		},
	}
	h := handler.NewExpenseHandler(stub)

	body := strings.NewReader(`{"description":"dinner","amount":40,"split_type":"exact","splits":[{"user_id":"a","amount":25},{"user_id":"b","amount":10}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/expenses", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "expected 40.00, got 35.00") {
		t.Fatalf("error body must carry the expected vs actual sums, got %s", rec.Body.String())
	}
}

func TestExpenseHandler_Create_RejectsUnknownSplitType(t *testing.T) {
	e := newTestEcho()
	h := handler.NewExpenseHandler(&stubExpenseService{
		createFn: func(ctx context.Context, callerID string, input ports.CreateExpenseInput) (string, error) {
			t.Fatal("service must not be called for invalid payloads")
			return "", nil
		},
	})

	body := strings.NewReader(`{"description":"dinner","amount":30,"split_type":"weighted"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/expenses", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubExpenseService{
		deleteFn: func(ctx context.Context, callerID, expenseID string) error {
			if expenseID != "exp_9" {
				t.Fatalf("expense id not forwarded, got %q", expenseID)
			}
			return nil
		},
	}
	h := handler.NewExpenseHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/expenses/exp_9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("exp_9")
	c.Set("user_id", "user_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestExpenseHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubExpenseService{
		deleteFn: func(ctx context.Context, callerID, expenseID string) error {
			return domain.ErrExpenseNotFound
		},
	}
	h := handler.NewExpenseHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/expenses/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	c.Set("user_id", "user_1")

	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExpenseHandler_Between(t *testing.T) {
	e := newTestEcho()
	stub := &stubExpenseService{
		betweenFn: func(ctx context.Context, callerID, otherUserID string) (*ports.BetweenUsersResult, error) {
			if callerID != "user_1" || otherUserID != "user_2" {
				t.Fatalf("ids not forwarded: %q %q", callerID, otherUserID)
			}
			return &ports.BetweenUsersResult{
				Balance:   12.5,
				OtherUser: ports.UserSummary{ID: otherUserID, Name: "Bob"},
			}, nil
		},
	}
	h := handler.NewExpenseHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/expenses/between/user_2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("user_2")
	c.Set("user_id", "user_1")

	if err := h.Between(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["balance"] != 12.5 {
		t.Fatalf("expected balance 12.5, got %v", resp["balance"])
	}
}
