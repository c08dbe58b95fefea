package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devnotify/database"
	"devnotify/models"
	"devnotify/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and returns a signed token for it.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.Logger.Error("Register: failed to create user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := s.Tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.Logger.Info("user registered", zap.String("userId", u.ID))
	return &AuthResponse{ID: u.ID, Token: token}, nil
}

// Login verifies the credentials and returns a fresh token.
func (s *DefaultUserService) Login(ctx context.Context, req models.UserLogin) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.Logger.Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{ID: u.ID, Token: token}, nil
}

// Logout revokes token for the rest of its lifetime.
func (s *DefaultUserService) Logout(ctx context.Context, token string) error {
	parsed, err := s.Tokens.ValidateToken(token)
	if err != nil || !parsed.Valid {
		return fmt.Errorf("%w: token is not valid", ErrInvalidInput)
	}
	if err := s.Revoker.Revoke(ctx, token, utils.TokenExpiry(parsed)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
