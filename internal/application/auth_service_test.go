package application

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"merchops/internal/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

type recordingSessionStore struct {
	created []*domain.AuthenticatedUser
	deleted []string
}

func (r *recordingSessionStore) Create(ctx context.Context, user *domain.AuthenticatedUser) (string, error) {
	r.created = append(r.created, user)
	return "session-token", nil
}

func (r *recordingSessionStore) Get(ctx context.Context, token string) (*domain.AuthenticatedUser, error) {
	return nil, nil
}

func (r *recordingSessionStore) Delete(ctx context.Context, token string) error {
	r.deleted = append(r.deleted, token)
	return nil
}

func userWithPassword(t *testing.T, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           "u1",
		Email:        email,
		Name:         "Ana",
		Role:         role,
		PasswordHash: string(hash),
	}
}

func TestLoginSuccess(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{
		"ana@example.com": userWithPassword(t, "ana@example.com", "correct horse", domain.RoleManager),
	}}
	sessions := &recordingSessionStore{}
	svc := NewAuthService(users, sessions, zerolog.Nop())

	token, authed, err := svc.Login(context.Background(), "ana@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "session-token", token)
	require.Equal(t, "u1", authed.ID)
	require.Equal(t, domain.RoleManager, authed.Role)
	require.Len(t, sessions.created, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{
		"ana@example.com": userWithPassword(t, "ana@example.com", "correct horse", domain.RoleManager),
	}}
	svc := NewAuthService(users, &recordingSessionStore{}, zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{users: map[string]*domain.User{}}, &recordingSessionStore{}, zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	// Identical to the wrong-password error, so accounts cannot be
	// enumerated through the login endpoint.
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &recordingSessionStore{}
	svc := NewAuthService(&fakeUserRepo{}, sessions, zerolog.Nop())

	require.NoError(t, svc.Logout(context.Background(), "session-token"))
	require.Equal(t, []string{"session-token"}, sessions.deleted)
}
