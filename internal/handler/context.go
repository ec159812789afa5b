package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's id placed in the
// context by the auth middleware.
func currentUserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}

// unauthorized is the response for requests that slipped past the auth
// middleware without a usable identity.
func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
}
