package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/mreiter/accountd/internal/models"
)

type mockUserService struct {
	ListFunc       func(ctx context.Context) ([]*models.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	CreateFunc     func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	UpdateFunc     func(ctx context.Context, id uuid.UUID, params models.CreateUserParams) (*models.User, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *mockUserService) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) Update(ctx context.Context, id uuid.UUID, params models.CreateUserParams) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockUserService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return 0, nil
}

type mockAuthService struct {
	HashPasswordFunc    func(password string) (string, error)
	RegisterFunc        func(ctx context.Context, msg models.UserMessage) (*models.User, error)
	SignInFunc          func(ctx context.Context, email, password string) (*models.User, string, error)
	CreateSessionFunc   func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc   func(ctx context.Context, token string) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) Register(ctx context.Context, msg models.UserMessage) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, msg)
	}
	return &models.User{ID: uuid.New(), Email: msg.Email, Name: msg.Name, PasswordHash: "hashed_" + msg.Password}, nil
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return &models.User{ID: uuid.New(), Email: email}, "test_session_token", nil
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "test_session_token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}
