package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mreiter/accountd/internal/models"
)

// UserServiceInterface defines the contract for user CRUD operations.
type UserServiceInterface interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, params models.CreateUserParams) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// AuthServiceInterface defines the contract for authentication and
// session operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	Register(ctx context.Context, msg models.UserMessage) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}
