package user

import (
	"context"
	"time"

	userRepo "devnotify/database/repository/user"
	"devnotify/models"
	"devnotify/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error)
	Login(ctx context.Context, req models.UserLogin) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// Profile
	Profile(ctx context.Context, userID string) (*models.User, error)
	ToggleSavedEvent(ctx context.Context, userID string, eventID models.EventID) ([]models.EventID, error)
	SetFCMToken(ctx context.Context, userID, token string) error
}

// Revoker stores logged-out tokens.
type Revoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	Tokens  *utils.TokenIssuer
	Revoker Revoker
	Logger  *zap.Logger

	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
}

func NewDefaultUserService(repo userRepo.UserRepository, tokens *utils.TokenIssuer, revoker Revoker, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{
		Repo:    repo,
		Tokens:  tokens,
		Revoker: revoker,
		Logger:  logger,
	}
}

// AuthResponse contains the user's ID and token.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}
