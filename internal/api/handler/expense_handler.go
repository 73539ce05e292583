package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/splitr-dev/splitr-api/internal/api/metrics"
	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// ExpenseHandler handles HTTP requests for the expense ledger.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

type splitRequest struct {
	UserID string  `json:"user_id" validate:"required"`
	Amount float64 `json:"amount"  validate:"gte=0"`
	Paid   bool    `json:"paid"`
}

type createExpenseRequest struct {
	Description    string         `json:"description"     validate:"required"`
	Amount         float64        `json:"amount"          validate:"required,gt=0"`
	Category       string         `json:"category"`
	Date           time.Time      `json:"date"`
	PaidByUserID   string         `json:"paid_by_user_id"`
	SplitType      string         `json:"split_type"      validate:"required,oneof=equal percentage exact"`
	Splits         []splitRequest `json:"splits"          validate:"omitempty,dive"`
	ParticipantIDs []string       `json:"participant_ids"`
	GroupID        string         `json:"group_id"`
}

type createExpenseResponse struct {
	ID string `json:"id"`
}

// Create records a new expense.
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createExpenseRequest  true  "Expense details"
// @Success      201   {object}  createExpenseResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateExpenseInput{
		Description:    req.Description,
		Amount:         req.Amount,
		Category:       req.Category,
		Date:           req.Date,
		PaidByUserID:   req.PaidByUserID,
		SplitType:      domain.SplitType(req.SplitType),
		ParticipantIDs: req.ParticipantIDs,
		GroupID:        req.GroupID,
	}
	for _, s := range req.Splits {
		input.Splits = append(input.Splits, ports.SplitInput{UserID: s.UserID, Amount: s.Amount, Paid: s.Paid})
	}

	id, err := h.service.Create(c.Request().Context(), caller, input)
	if err != nil {
		return err
	}

	metrics.ExpensesCreatedTotal.WithLabelValues(req.SplitType).Inc()
	return c.JSON(http.StatusCreated, createExpenseResponse{ID: id})
}

// Delete removes an expense.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Expense id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	metrics.ExpensesDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Between returns the shared one-to-one history with another user.
//
// @Summary      Get expenses between the caller and another user
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Counterpart user id"
// @Success      200      {object}  ports.BetweenUsersResult
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /v1/expenses/between/{user_id} [get]
func (h *ExpenseHandler) Between(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetBetweenUsers(c.Request().Context(), caller, c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
