package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/taxigo/services/auth"
	httpHandler "github.com/piresc/taxigo/services/auth/handler/http"
)

// RouteMiddleware carries the rate limit policies applied to auth routes.
// Credential endpoints get a tighter budget than token refresh.
type RouteMiddleware struct {
	CredentialRateLimit echo.MiddlewareFunc
	RefreshRateLimit    echo.MiddlewareFunc
}

// HTTPHandler wires the auth HTTP handlers to routes
type HTTPHandler struct {
	authHTTP *httpHandler.AuthHandler
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(authUC auth.AuthUC) *HTTPHandler {
	return &HTTPHandler{
		authHTTP: httpHandler.NewAuthHandler(authUC),
	}
}

// RegisterRoutes registers all auth HTTP routes
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo, mw RouteMiddleware) {
	g := e.Group("/v1/auth")

	g.POST("/register", h.authHTTP.Register, mw.CredentialRateLimit)
	g.POST("/login", h.authHTTP.Login, mw.CredentialRateLimit)
	g.POST("/refresh", h.authHTTP.Refresh, mw.RefreshRateLimit)
}
