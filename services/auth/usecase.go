package auth

import (
	"context"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// AuthUC is the account and token lifecycle contract.
type AuthUC interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error)
}
