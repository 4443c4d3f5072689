package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/ratelimit"
	httpHandler "github.com/piresc/taxigo/services/admin/handler/http"
)

// RouteMiddleware carries the middleware chain applied to admin routes.
// Admin routes are not rate limited so operators can always unblock.
type RouteMiddleware struct {
	Auth         echo.MiddlewareFunc
	RequireAdmin echo.MiddlewareFunc
}

// HTTPHandler wires the admin HTTP handlers to routes
type HTTPHandler struct {
	adminHTTP *httpHandler.AdminHandler
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(limiter *ratelimit.Limiter, appLogger *logger.AppLogger) *HTTPHandler {
	return &HTTPHandler{
		adminHTTP: httpHandler.NewAdminHandler(limiter, appLogger),
	}
}

// RegisterRoutes registers all admin HTTP routes
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo, mw RouteMiddleware) {
	g := e.Group("/v1/admin", mw.Auth, mw.RequireAdmin)

	g.GET("/limiter/stats", h.adminHTTP.LimiterStats)
	g.POST("/limiter/unblock", h.adminHTTP.UnblockIP)
}
