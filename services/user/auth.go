// File: services/user/auth.go
package user

import (
	"context"
	"errors"
	"strings"

	userRepo "pristine/database/repository/user"
	"pristine/models"
	"pristine/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Tokens live exactly as long as their allowlist entry.
const tokenTTL = utils.AuthCacheTTL

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles accounts and the session accessor.
type UserService interface {
	// Register creates a customer account and signs it in.
	Register(ctx context.Context, name, email, password, phone string) (*models.User, string, error)
	// Authenticate verifies credentials and issues a token.
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	// WhoAmI resolves the current account from its ID (the "session
	// accessor" behind GET /auth/me).
	WhoAmI(ctx context.Context, userID string) (*models.User, error)
	// Logout revokes the account's active token.
	Logout(ctx context.Context, userID string) error
	// UpdateProfile updates name, phone and the saved address.
	UpdateProfile(ctx context.Context, userID string, name, phone string, addr *models.Address) (*models.User, error)
}

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

// Register creates a customer account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, name, email, password, phone string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, "", errors.New("name, email and a password of at least 8 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
		Role:         models.RoleCustomer,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	s.Logger.Info("user registered", zap.String("user", u.ID))
	return u, token, nil
}

// Authenticate verifies credentials and issues a token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// issueToken signs a JWT and stores its hash in the auth cache; the
// middleware only accepts tokens whose hash is on file, so logout and
// re-login revoke older tokens.
func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, string(u.Role), tokenTTL)
	if err != nil {
		return "", err
	}
	cache := utils.GetAuthCacheClient()
	if err := cache.Set(ctx, utils.AuthCachePrefix+u.ID, utils.HashToken(token), tokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// WhoAmI resolves the current account from its ID.
func (s *DefaultUserService) WhoAmI(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// Logout revokes the account's active token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	cache := utils.GetAuthCacheClient()
	return cache.Del(ctx, utils.AuthCachePrefix+userID).Err()
}

// UpdateProfile updates name, phone and the saved address.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, name, phone string, addr *models.Address) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	if phone != "" {
		u.Phone = phone
	}
	if addr != nil {
		u.SavedAddress = addr
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}
