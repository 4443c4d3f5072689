package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/ratelimit"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/sirupsen/logrus"
)

// RateLimiterConfig contains configuration for the rate limiter middleware
type RateLimiterConfig struct {
	Limiter *ratelimit.Limiter
	Logger  *logger.AppLogger
	Limit   int           // Maximum number of requests
	Period  time.Duration // Time period for the limit
}

// RateLimiterMiddleware creates a middleware for rate limiting. It must be
// registered before any authentication middleware so that unauthenticated
// flooding is rejected before token verification, and auth failures never
// count as limiter violations.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	policy := ratelimit.Policy{Limit: config.Limit, Window: config.Period}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sourceIP := c.RealIP()
			clientID := ratelimit.ClientID(sourceIP, c.Request().UserAgent())

			decision := config.Limiter.Admit(clientID, sourceIP, time.Now(), policy)

			if decision.Allowed {
				c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
				c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
				return next(c)
			}

			if decision.Reason == ratelimit.ReasonSourceBlocked {
				config.Logger.SecurityEvent("blocked_ip_attempt", logrus.Fields{
					"ip":       sourceIP,
					"endpoint": c.Path(),
				})
				return utils.TooManyRequestsResponse(c, "IP address blocked due to suspicious activity")
			}

			config.Logger.SecurityEvent("rate_limit_exceeded", logrus.Fields{
				"client_id": clientID,
				"ip":        sourceIP,
				"endpoint":  c.Path(),
			})
			if decision.Escalated {
				config.Logger.SecurityEvent("ip_blocked", logrus.Fields{
					"ip":     sourceIP,
					"reason": "multiple rate limit violations",
				})
			}

			retryAfter := int64(decision.RetryAfter / time.Second)
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", "0")
			c.Response().Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))

			return utils.TooManyRequestsResponse(c, "Rate limit exceeded. Please try again later.")
		}
	}
}
