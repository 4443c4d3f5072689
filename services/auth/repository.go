package auth

import (
	"context"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// UserRepo is the account storage contract.
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
