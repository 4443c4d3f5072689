package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	jwtpkg "github.com/piresc/taxigo/internal/pkg/jwt"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/services/auth"
)

// AuthUC implements account registration, login and token refresh.
type AuthUC struct {
	repo   auth.UserRepo
	cfg    *models.Config
	logger *logger.AppLogger
}

// NewAuthUC creates a new auth use case
func NewAuthUC(repo auth.UserRepo, cfg *models.Config, appLogger *logger.AppLogger) *AuthUC {
	return &AuthUC{
		repo:   repo,
		cfg:    cfg,
		logger: appLogger,
	}
}

// Register creates a new account and returns a token pair for it.
func (uc *AuthUC) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	_, err := uc.repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, auth.ErrEmailTaken
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.WithField("user_id", user.ID).Info("user registered")
	return jwtpkg.IssueTokenPair(user.ID, user.Email, user.Role, uc.cfg.JWT)
}

// Login verifies credentials and returns a token pair. Unknown emails,
// wrong passwords and deactivated accounts all map to the same error.
func (uc *AuthUC) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := uc.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !user.IsActive {
		return nil, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return jwtpkg.IssueTokenPair(user.ID, user.Email, user.Role, uc.cfg.JWT)
}

// Refresh re-mints an access token from a refresh token. The refresh
// token itself is not rotated.
func (uc *AuthUC) Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	return jwtpkg.RefreshAccessToken(refreshToken, uc.cfg.JWT)
}
