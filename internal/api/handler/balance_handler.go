package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// BalanceHandler exposes the derived balance views.
type BalanceHandler struct {
	service ports.BalanceService
}

func NewBalanceHandler(service ports.BalanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

type spendingResponse struct {
	Year       int                  `json:"year"`
	TotalSpent float64              `json:"total_spent"`
	Monthly    []ports.MonthlyTotal `json:"monthly"`
}

// Get returns the caller's dashboard balances.
//
// @Summary      Get the caller's balances
// @Tags         balances
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserBalances
// @Router       /v1/balances [get]
func (h *BalanceHandler) Get(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	balances, err := h.service.GetUserBalances(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balances)
}

// Spending returns the caller's yearly and monthly spending totals.
//
// @Summary      Get the caller's spending insights
// @Tags         balances
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Calendar year (defaults to current)"
// @Success      200   {object}  spendingResponse
// @Router       /v1/balances/spending [get]
func (h *BalanceHandler) Spending(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	year := time.Now().UTC().Year()
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = parsed
	}

	ctx := c.Request().Context()
	total, err := h.service.TotalSpent(ctx, caller, year)
	if err != nil {
		return err
	}
	monthly, err := h.service.MonthlySpending(ctx, caller, year)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, spendingResponse{Year: year, TotalSpent: total, Monthly: monthly})
}
