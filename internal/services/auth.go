package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mreiter/accountd/internal/auth"
	"github.com/mreiter/accountd/internal/models"
)

const (
	sessionDuration  = 30 * 24 * time.Hour
	sessionKeyPrefix = "session:"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// AuthService registers accounts, authenticates credentials, and owns
// the session store. Sessions live in Redis under a SHA-256 hash of an
// opaque token; only the unhashed token ever reaches the client.
type AuthService struct {
	users  UserServiceInterface
	redis  Redis
	hasher *auth.PasswordHasher
}

func NewAuthService(users UserServiceInterface, redis Redis, hasher *auth.PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		redis:  redis,
		hasher: hasher,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// Register hashes the plaintext credential and creates the account.
// Hashing happens before the insert, so an aborted registration never
// persists a partial user.
func (s *AuthService) Register(ctx context.Context, msg models.UserMessage) (*models.User, error) {
	hash, err := s.hasher.Hash(msg.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return s.users.Create(ctx, models.CreateUserParams{
		Email:        msg.Email,
		Name:         msg.Name,
		PasswordHash: hash,
	})
}

// SignIn authenticates and establishes a session. An unknown email is
// reported as ErrInvalidCredentials, not as a missing resource, so the
// two failure modes are indistinguishable to the caller. A malformed
// stored hash is an internal error and is deliberately not folded into
// the credentials error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, "", fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) GenerateSessionToken() (token string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}

	token = hex.EncodeToString(bytes)
	hash = s.hashToken(token)

	return token, hash, nil
}

func (s *AuthService) hashToken(token string) string {
	hashBytes := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hashBytes[:])
}

// CreateSession stores the token hash in Redis with a TTL. A store
// failure is surfaced to the caller rather than leaving the client
// with a cookie no server-side state backs.
func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, tokenHash, err := s.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, sessionKeyPrefix+tokenHash, userID.String(), sessionDuration); err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	return token, nil
}

// ValidateSession resolves a token to its user and refreshes the TTL.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	key := sessionKeyPrefix + s.hashToken(token)

	userIDStr, err := s.redis.Get(ctx, key)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session user id: %w", err)
	}

	_ = s.redis.Expire(ctx, key, sessionDuration)

	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	key := sessionKeyPrefix + s.hashToken(token)

	if err := s.redis.Del(ctx, key); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}
