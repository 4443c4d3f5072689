package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/taxigo/internal/pkg/jwt"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/sirupsen/logrus"
)

// Context keys set by the auth middleware.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// JWTAuthMiddleware creates a middleware for JWT authentication. The
// expired / wrong-kind / malformed cases all map to 401 but keep distinct
// messages for the caller and the security log.
func JWTAuthMiddleware(cfg models.JWTConfig, appLogger *logger.AppLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.VerifyToken(parts[1], jwtpkg.TokenKindAccess, cfg.Secret)
			if err != nil {
				appLogger.SecurityEvent("invalid_token_usage", logrus.Fields{
					"ip":       c.RealIP(),
					"endpoint": c.Path(),
					"reason":   err.Error(),
				})

				switch {
				case errors.Is(err, jwtpkg.ErrTokenExpired):
					return utils.UnauthorizedResponse(c, "Token expired")
				case errors.Is(err, jwtpkg.ErrWrongTokenKind):
					return utils.UnauthorizedResponse(c, "Wrong token kind")
				default:
					return utils.UnauthorizedResponse(c, "Invalid token")
				}
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextUserRole, claims.Role)

			return next(c)
		}
	}
}

// RequireRoles creates a middleware that restricts a route to the given
// roles. With no roles, any authenticated identity passes.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(roles) == 0 {
				return next(c)
			}

			role, _ := c.Get(ContextUserRole).(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return utils.ForbiddenResponse(c, "Insufficient permissions")
		}
	}
}
