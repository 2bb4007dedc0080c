package application

import (
	"context"
	"errors"
	"fmt"

	"merchops/internal/domain"
	"merchops/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a failed login. One error for
// both unknown email and wrong password, so the login endpoint cannot
// be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles login and session lifecycle for dashboard users.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.AuthenticatedUser, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	authed := &domain.AuthenticatedUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	token, err := s.sessions.Create(ctx, authed)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().Str("userId", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return token, authed, nil
}

// Logout revokes the session for the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
