package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: a present, parseable role proves the
// middleware ran, and every protected handler needs the subject id.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	rawRole, _ := c.Get("role").(string)

	role, parseErr := domain.ParseRole(rawRole)
	if userID == "" || parseErr != nil {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
