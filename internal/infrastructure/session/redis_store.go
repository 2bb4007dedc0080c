package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"merchops/internal/domain"
	"merchops/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "merchops:session:"

// Store keeps sessions in Redis with a TTL. Tokens handed to clients
// are "<id>.<signature>" where the signature is an HMAC-SHA256 of the
// id under the session secret, so a forged id is rejected before any
// Redis lookup.
type Store struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStore creates a Redis-backed session store.
func NewStore(rdb *redis.Client, secret string, ttl time.Duration, logger zerolog.Logger) ports.SessionStore {
	return &Store{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Create persists a new session for the user and returns its token.
func (s *Store) Create(ctx context.Context, user *domain.AuthenticatedUser) (string, error) {
	idBytes := make([]byte, 32)
	if _, err := rand.Read(idBytes); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	id := hex.EncodeToString(idBytes)

	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Debug().Str("userId", user.ID).Msg("Session created")
	return id + "." + s.sign(id), nil
}

// Get resolves a token to its authenticated user.
func (s *Store) Get(ctx context.Context, token string) (*domain.AuthenticatedUser, error) {
	id, ok := s.verify(token)
	if !ok {
		return nil, ports.ErrSessionNotFound
	}

	payload, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ports.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user domain.AuthenticatedUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &user, nil
}

// Delete revokes a session. Unknown or tampered tokens are a no-op.
func (s *Store) Delete(ctx context.Context, token string) error {
	id, ok := s.verify(token)
	if !ok {
		return nil
	}
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Store) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Store) verify(token string) (string, bool) {
	id, sig, found := strings.Cut(token, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(s.sign(id)), []byte(sig)) {
		return "", false
	}
	return id, true
}
