package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// ReminderHandler exposes the debt scan the reminder scheduler runs on,
// for operators to inspect. Admin only.
type ReminderHandler struct {
	balances ports.BalanceService
}

func NewReminderHandler(balances ports.BalanceService) *ReminderHandler {
	return &ReminderHandler{balances: balances}
}

type debtorsResponse struct {
	Debtors []ports.DebtorSummary `json:"debtors"`
}

// Debts returns every user with outstanding one-to-one debts.
//
// @Summary      List users with outstanding debts
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  debtorsResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/reminders/debts [get]
func (h *ReminderHandler) Debts(c echo.Context) error {
	debtors, err := h.balances.GetUsersWithOutstandingDebts(c.Request().Context())
	if err != nil {
		return err
	}
	if debtors == nil {
		debtors = []ports.DebtorSummary{}
	}
	return c.JSON(http.StatusOK, debtorsResponse{Debtors: debtors})
}
