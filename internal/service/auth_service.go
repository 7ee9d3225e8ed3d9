package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avasquez/tally/internal/auth"
	"github.com/avasquez/tally/internal/models"
)

// AuthService handles account registration and login sessions.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Session is the result of a successful register or login.
type Session struct {
	User  *models.User
	Token string
}

// Register creates a new user account and returns a session for it.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*Session, error) {
	slog.Info("Register request", "email", email)

	if email == "" || displayName == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		slog.Error("Registration failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token}, nil
}

// Login authenticates a user and returns a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	slog.Info("Login request", "email", email)

	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	slog.Info("User logged in", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token}, nil
}
