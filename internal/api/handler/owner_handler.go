package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings/internal/core/ports"
)

// OwnerHandler serves the OWNER-only dashboard.
type OwnerHandler struct {
	ownerService ports.OwnerService
}

func NewOwnerHandler(ownerService ports.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// Dashboard handles GET /api/owner/dashboard.
//
// @Summary      Owner dashboard: the caller's store and everyone who rated it
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Dashboard
// @Failure      404  {object}  map[string]string
// @Router       /api/owner/dashboard [get]
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	dash, err := h.ownerService.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}
