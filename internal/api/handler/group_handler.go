package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/splitr-dev/splitr-api/internal/api/metrics"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// GroupHandler handles HTTP requests for groups.
type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type createGroupRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type createGroupResponse struct {
	ID string `json:"id"`
}

type listGroupsResponse struct {
	Groups []ports.GroupSummary `json:"groups"`
}

// Create creates a group with the caller as admin.
//
// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGroupRequest  true  "Group details"
// @Success      201   {object}  createGroupResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), caller, ports.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		return err
	}

	metrics.GroupsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createGroupResponse{ID: id})
}

// List returns the caller's groups with their balance in each.
//
// @Summary      List the caller's groups
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listGroupsResponse
// @Router       /v1/groups [get]
func (h *GroupHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	groups, err := h.service.ListForUser(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listGroupsResponse{Groups: groups})
}

// Expenses returns a group's full ledger view.
//
// @Summary      Get a group's expenses and balances
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Group id"
// @Success      200  {object}  ports.GroupExpensesResult
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/groups/{id}/expenses [get]
func (h *GroupHandler) Expenses(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetGroupExpenses(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
