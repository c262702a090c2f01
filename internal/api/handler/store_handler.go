package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings/internal/api/metrics"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

// StoreHandler serves the public store views available to any authenticated
// role.
type StoreHandler struct {
	storeService ports.StoreService
}

func NewStoreHandler(storeService ports.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

type rateStoreRequest struct {
	Value int `json:"value" validate:"required,gte=1,lte=5"`
}

// List handles GET /api/stores.
//
// @Summary      List stores with aggregates and the caller's own rating
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  false  "Search over name and address"
// @Param        page   query     int     false  "Page (default 1)"
// @Param        limit  query     int     false  "Page size (default 10)"
// @Success      200    {object}  ports.StoreListResult
// @Router       /api/stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.storeService.List(c.Request().Context(), userID, ports.StoreQuery{
		Search: c.QueryParam("q"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Get handles GET /api/stores/:id.
//
// @Summary      Get one store with aggregates and the caller's own rating
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  ports.PublicStore
// @Failure      404  {object}  map[string]string
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	res, err := h.storeService.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Rate handles POST /api/stores/:id/ratings: create-or-overwrite the
// caller's rating for the store.
//
// @Summary      Rate a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Store ID"
// @Param        body  body      rateStoreRequest  true  "Rating value (1-5)"
// @Success      200   {object}  domain.Rating
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/stores/{id}/ratings [post]
func (h *StoreHandler) Rate(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.storeService.Rate(c.Request().Context(), userID, c.Param("id"), req.Value)
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(rating.Value)).Inc()
	return c.JSON(http.StatusOK, rating)
}
