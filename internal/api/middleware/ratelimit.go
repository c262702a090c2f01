package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings/internal/api/metrics"
	"github.com/ratehub/store-ratings/internal/infrastructure/ratelimit"
)

// RateLimit applies the fixed-window limiter per caller address.
func RateLimit(limiter *ratelimit.FixedWindow) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.Request().Context(), c.RealIP()) {
				metrics.RequestsThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
