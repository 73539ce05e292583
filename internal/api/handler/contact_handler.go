package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// ContactHandler handles HTTP requests for contact resolution.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type searchResponse struct {
	Users []ports.UserSummary `json:"users"`
}

// List returns everyone the caller has split with, plus their groups.
//
// @Summary      List the caller's contacts and groups
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ContactList
// @Router       /v1/contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.ListContacts(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}

// Search matches users by name or email.
//
// @Summary      Search users
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  true  "Search query (min 2 characters)"
// @Success      200  {object}  searchResponse
// @Router       /v1/contacts/search [get]
func (h *ContactHandler) Search(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	users, err := h.service.Search(c.Request().Context(), caller, c.QueryParam("q"))
	if err != nil {
		return err
	}
	if users == nil {
		users = []ports.UserSummary{}
	}
	return c.JSON(http.StatusOK, searchResponse{Users: users})
}
