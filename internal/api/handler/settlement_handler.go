package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/splitr-dev/splitr-api/internal/api/metrics"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// SettlementHandler handles HTTP requests for the settlement ledger.
type SettlementHandler struct {
	service ports.SettlementService
}

func NewSettlementHandler(service ports.SettlementService) *SettlementHandler {
	return &SettlementHandler{service: service}
}

type createSettlementRequest struct {
	Amount            float64  `json:"amount"               validate:"required,gt=0"`
	Note              string   `json:"note"`
	PaidByUserID      string   `json:"paid_by_user_id"      validate:"required"`
	ReceivedByUserID  string   `json:"received_by_user_id"  validate:"required"`
	GroupID           string   `json:"group_id"`
	RelatedExpenseIDs []string `json:"related_expense_ids"`
}

type createSettlementResponse struct {
	ID string `json:"id"`
}

// Create records a payment between two users.
//
// @Summary      Record a settlement
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSettlementRequest  true  "Settlement details"
// @Success      201   {object}  createSettlementResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/settlements [post]
func (h *SettlementHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req createSettlementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), caller, ports.CreateSettlementInput{
		Amount:            req.Amount,
		Note:              req.Note,
		PaidByUserID:      req.PaidByUserID,
		ReceivedByUserID:  req.ReceivedByUserID,
		GroupID:           req.GroupID,
		RelatedExpenseIDs: req.RelatedExpenseIDs,
	})
	if err != nil {
		return err
	}

	metrics.SettlementsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createSettlementResponse{ID: id})
}
