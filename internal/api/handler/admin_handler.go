package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

// AdminHandler serves the ADMIN-only management endpoints.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// --- Request / Response types ---

type createUserRequest struct {
	Name    string `json:"name"    validate:"required,min=20,max=60"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"omitempty,max=400"`
	Role    string `json:"role"    validate:"required,oneof=ADMIN OWNER USER"`
}

type createdUserResponse struct {
	User         userResponse `json:"user"`
	TempPassword string       `json:"tempPassword"`
}

type adminUserDetailResponse struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Email       string                    `json:"email"`
	Address     string                    `json:"address,omitempty"`
	Role        domain.Role               `json:"role"`
	CreatedAt   time.Time                 `json:"createdAt"`
	StoreRating *ports.StoreRatingSummary `json:"storeRating"`
}

type createStoreRequest struct {
	Name    string `json:"name"    validate:"required,max=120"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID string `json:"ownerId" validate:"omitempty"`
}

type updateStoreRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=120"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=400"`
	OwnerID *string `json:"ownerId"`
}

type adminStoreResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	Address      string          `json:"address"`
	OwnerID      string          `json:"ownerId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	AvgRating    float64         `json:"avgRating"`
	RatingsCount int             `json:"ratingsCount"`
	Owner        *ports.OwnerRef `json:"owner,omitempty"`
}

type adminStoreDetailResponse struct {
	adminStoreResponse
	Ratings []domain.StoreRater `json:"ratings"`
}

type adminStoreListResponse struct {
	Stores     []adminStoreResponse `json:"stores"`
	Pagination ports.Pagination     `json:"pagination"`
}

func toAdminStoreResponse(s ports.AdminStore) adminStoreResponse {
	return adminStoreResponse{
		ID:           s.Store.ID,
		Name:         s.Store.Name,
		Email:        s.Store.Email,
		Address:      s.Store.Address,
		OwnerID:      s.Store.OwnerID,
		CreatedAt:    s.Store.CreatedAt,
		AvgRating:    s.AvgRating,
		RatingsCount: s.RatingsCount,
		Owner:        s.Owner,
	}
}

// Metrics handles GET /api/admin/metrics.
//
// @Summary      Platform entity counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Metrics
// @Router       /api/admin/metrics [get]
func (h *AdminHandler) Metrics(c echo.Context) error {
	m, err := h.adminService.Metrics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// CreateUser handles POST /api/admin/users. The generated temporary password
// is returned exactly once.
//
// @Summary      Create a user with a temporary password
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  createdUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.adminService.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Role:    domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdUserResponse{
		User:         toUserResponse(created.User),
		TempPassword: created.TempPassword,
	})
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Search over name, email and address"
// @Param        role    query     string  false  "Filter by role"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  ports.UserListResult
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.adminService.ListUsers(c.Request().Context(), ports.UserQuery{
		Search: c.QueryParam("search"),
		Role:   domain.Role(c.QueryParam("role")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// GetUser handles GET /api/admin/users/:id.
//
// @Summary      Get one user; OWNERs carry their store's rating aggregate
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  adminUserDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	detail, err := h.adminService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminUserDetailResponse{
		ID:          detail.User.ID,
		Name:        detail.User.Name,
		Email:       detail.User.Email,
		Address:     detail.User.Address,
		Role:        detail.User.Role,
		CreatedAt:   detail.User.CreatedAt,
		StoreRating: detail.StoreRating,
	})
}

// CreateStore handles POST /api/admin/stores.
//
// @Summary      Create a store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  map[string]string
// @Router       /api/admin/stores [post]
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.adminService.CreateStore(c.Request().Context(), ports.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, store)
}

// ListStores handles GET /api/admin/stores.
//
// @Summary      List stores with aggregates and owner identities
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Search over name and address"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  adminStoreListResponse
// @Router       /api/admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.adminService.ListStores(c.Request().Context(), ports.StoreQuery{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	stores := make([]adminStoreResponse, 0, len(res.Stores))
	for _, s := range res.Stores {
		stores = append(stores, toAdminStoreResponse(s))
	}
	return c.JSON(http.StatusOK, adminStoreListResponse{Stores: stores, Pagination: res.Pagination})
}

// GetStore handles GET /api/admin/stores/:id. Unlike the public detail view
// it exposes every individual rating with its author.
//
// @Summary      Get one store with its full rating audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  adminStoreDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/stores/{id} [get]
func (h *AdminHandler) GetStore(c echo.Context) error {
	detail, err := h.adminService.GetStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminStoreDetailResponse{
		adminStoreResponse: toAdminStoreResponse(detail.AdminStore),
		Ratings:            detail.Raters,
	})
}

// UpdateStore handles PATCH /api/admin/stores/:id.
//
// @Summary      Partially update a store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Store ID"
// @Param        body  body      updateStoreRequest  true  "Fields to update"
// @Success      200   {object}  domain.Store
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/stores/{id} [patch]
func (h *AdminHandler) UpdateStore(c echo.Context) error {
	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.adminService.UpdateStore(c.Request().Context(), c.Param("id"), ports.UpdateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// DeleteStore handles DELETE /api/admin/stores/:id.
//
// @Summary      Delete a store
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/stores/{id} [delete]
func (h *AdminHandler) DeleteStore(c echo.Context) error {
	if err := h.adminService.DeleteStore(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Store deleted successfully"})
}
