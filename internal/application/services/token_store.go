package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

const accessTokenKey = "access_token"

// TokenClaims are the unverified claims shown next to the login form
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// TokenStore keeps the bearer token of one browser session under a single
// well-known key. The signature is never checked here; the auth service does that.
type TokenStore struct {
	store     providers.KeyValueStore
	sessionID string
}

var _ providers.TokenSource = (*TokenStore)(nil)

// NewTokenStore creates a token store for sessionID
func NewTokenStore(store providers.KeyValueStore, sessionID string) *TokenStore {
	return &TokenStore{
		store:     store,
		sessionID: sessionID,
	}
}

// TokenKey returns the storage key holding the token of sessionID
func TokenKey(sessionID string) string {
	return fmt.Sprintf("vrtic:session:%s:%s", sessionID, accessTokenKey)
}

// Get returns the stored token. Absent, empty, malformed and unreadable tokens
// all report ok == false.
func (s *TokenStore) Get(ctx context.Context) (string, bool) {
	token, _, ok := s.load(ctx)
	return token, ok
}

// Claims returns the unverified claims of the stored token
func (s *TokenStore) Claims(ctx context.Context) (TokenClaims, bool) {
	_, claims, ok := s.load(ctx)
	return claims, ok
}

// Set stores token, replacing any previous one
func (s *TokenStore) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.NewValidationError("empty access token")
	}
	if err := s.store.Set(ctx, TokenKey(s.sessionID), token, 0); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	return nil
}

// Clear removes the stored token
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, TokenKey(s.sessionID)); err != nil {
		return fmt.Errorf("failed to clear access token: %w", err)
	}
	return nil
}

func (s *TokenStore) load(ctx context.Context) (string, TokenClaims, bool) {
	raw, err := s.store.Get(ctx, TokenKey(s.sessionID))
	if err != nil {
		if !errors.Is(err, providers.ErrKeyNotFound) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Failed to read access token")
		}
		return "", TokenClaims{}, false
	}

	token := strings.TrimSpace(raw)
	claims, ok := parseClaims(token)
	if !ok {
		return "", TokenClaims{}, false
	}
	return token, claims, true
}

func parseClaims(token string) (TokenClaims, bool) {
	if token == "" {
		return TokenClaims{}, false
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return TokenClaims{}, false
	}

	var out TokenClaims
	out.Subject, _ = mapClaims.GetSubject()
	out.Role, _ = mapClaims["role"].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}
