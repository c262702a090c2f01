package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

type stubOwnerService struct {
	dashboardFn func(ctx context.Context, ownerID string) (*ports.Dashboard, error)
}

func (s *stubOwnerService) Dashboard(ctx context.Context, ownerID string) (*ports.Dashboard, error) {
	return s.dashboardFn(ctx, ownerID)
}

func TestOwnerHandler_Dashboard(t *testing.T) {
	stub := &stubOwnerService{
		dashboardFn: func(ctx context.Context, ownerID string) (*ports.Dashboard, error) {
			if ownerID != "u2" {
				t.Fatalf("unexpected owner: %s", ownerID)
			}
			return &ports.Dashboard{
				Store: ports.DashboardStore{
					ID:           "s1",
					Name:         "Corner Coffee",
					Address:      "1 Main St",
					AvgRating:    3.5,
					RatingsCount: 2,
				},
				Raters: []domain.StoreRater{
					{Name: "Rater One", Email: "one@example.com", Value: 4},
					{Name: "Rater Two", Email: "two@example.com", Value: 3},
				},
			}, nil
		},
	}
	h := NewOwnerHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/owner/dashboard", "")
	asCaller(c, "u2", domain.RoleOwner)

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Store struct {
			AvgRating    float64 `json:"avgRating"`
			RatingsCount int     `json:"ratingsCount"`
		} `json:"store"`
		Raters []map[string]any `json:"raters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Store.AvgRating != 3.5 || resp.Store.RatingsCount != 2 {
		t.Fatalf("unexpected aggregates: %+v", resp.Store)
	}
	if len(resp.Raters) != 2 || resp.Raters[0]["email"] != "one@example.com" {
		t.Fatalf("unexpected raters: %+v", resp.Raters)
	}
}

func TestOwnerHandler_Dashboard_NoStore(t *testing.T) {
	stub := &stubOwnerService{
		dashboardFn: func(ctx context.Context, ownerID string) (*ports.Dashboard, error) {
			return nil, domain.ErrNoStoreForOwner
		},
	}
	h := NewOwnerHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/owner/dashboard", "")
	asCaller(c, "u2", domain.RoleOwner)

	if err := h.Dashboard(c); !errors.Is(err, domain.ErrNoStoreForOwner) {
		t.Fatalf("expected ErrNoStoreForOwner, got %v", err)
	}
}

func TestOwnerHandler_Dashboard_MissingClaims(t *testing.T) {
	stub := &stubOwnerService{
		dashboardFn: func(ctx context.Context, ownerID string) (*ports.Dashboard, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewOwnerHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/owner/dashboard", "")

	err := h.Dashboard(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
