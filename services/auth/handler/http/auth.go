package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/taxigo/internal/pkg/jwt"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/piresc/taxigo/services/auth"
)

// AuthHandler handles HTTP requests for account and token operations
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth HTTP handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// Register handles account creation requests
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.authUC.Register(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return utils.ErrorResponseHandler(c, http.StatusConflict, "Email already registered")
		}
		return utils.InternalServerErrorResponse(c, "Failed to register account")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Account created", resp)
}

// Login handles credential verification requests
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.authUC.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.UnauthorizedResponse(c, "Invalid credentials")
		}
		return utils.InternalServerErrorResponse(c, "Failed to log in")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Logged in", resp)
}

// Refresh handles access token re-minting requests
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwtpkg.ErrTokenExpired):
			return utils.UnauthorizedResponse(c, "Refresh token expired")
		case errors.Is(err, jwtpkg.ErrWrongTokenKind), errors.Is(err, jwtpkg.ErrTokenMalformed):
			return utils.UnauthorizedResponse(c, "Invalid refresh token")
		default:
			return utils.InternalServerErrorResponse(c, "Failed to refresh token")
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, "Token refreshed", resp)
}
