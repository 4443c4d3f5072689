package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/middleware"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/pkg/ratelimit"
	"github.com/piresc/taxigo/internal/utils"
)

// AdminHandler exposes the rate limiter's operational surface.
type AdminHandler struct {
	limiter *ratelimit.Limiter
	logger  *logger.AppLogger
}

// NewAdminHandler creates a new admin HTTP handler
func NewAdminHandler(limiter *ratelimit.Limiter, appLogger *logger.AppLogger) *AdminHandler {
	return &AdminHandler{
		limiter: limiter,
		logger:  appLogger,
	}
}

// LimiterStats returns counts of tracked, suspicious and blocked sources
func (h *AdminHandler) LimiterStats(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Limiter stats retrieved", h.limiter.Stats())
}

// UnblockIP clears a blocked source address and resets its suspicion
func (h *AdminHandler) UnblockIP(c echo.Context) error {
	var req models.UnblockRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	if !h.limiter.Unblock(req.IPAddress) {
		return utils.NotFoundResponse(c, "IP address is not blocked")
	}

	h.logger.SecurityEvent("ip_unblocked", logrus.Fields{
		"ip_address": req.IPAddress,
		"admin_id":   c.Get(middleware.ContextUserID),
	})
	return utils.SuccessResponse(c, http.StatusOK, "IP address unblocked", nil)
}
