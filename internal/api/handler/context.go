package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// callerID extracts the authenticated user id injected by the Auth middleware
// and performs a fast-fail check before any service call. Its presence proves
// the middleware ran; an empty value means the route was wired without it.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
