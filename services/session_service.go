package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"explorerhub/models"
	"explorerhub/utils/errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// Session is the server-side copy of what the web client keeps after login:
// the bearer token and the user it belongs to.
type Session struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type SessionService struct {
	redisClient *redis.Client
	tokens      *TokenInspector
	ttl         time.Duration
	now         func() time.Time
}

func NewSessionService(redisClient *redis.Client, tokens *TokenInspector, ttl time.Duration) *SessionService {
	return &SessionService{redisClient: redisClient, tokens: tokens, ttl: ttl, now: time.Now}
}

// sessionKey never embeds the raw token.
func sessionKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

// Save stores the session for auth.AccessToken. The lifetime is the
// configured TTL, shortened to the token's own expiry when it is sooner.
func (s *SessionService) Save(ctx context.Context, auth models.AuthResponse) (*Session, error) {
	if auth.AccessToken == "" {
		return nil, errors.NewAPIError("BACKEND_DECODE_ERROR", "Internal server error", http.StatusInternalServerError, "login response has no access token")
	}
	info, err := s.tokens.Inspect(auth.AccessToken)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	if !info.ExpiresAt.IsZero() && info.ExpiresAt.Before(expiresAt) {
		expiresAt = info.ExpiresAt
	}
	tokenType := auth.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	session := &Session{
		Token:     auth.AccessToken,
		TokenType: tokenType,
		User:      auth.User,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrap(err, "SESSION_ERROR", "Failed to marshal session", http.StatusInternalServerError)
	}
	if err := s.redisClient.Set(ctx, sessionKey(auth.AccessToken), sessionJSON, expiresAt.Sub(now)).Err(); err != nil {
		return nil, errors.Wrap(err, "SESSION_ERROR", "Failed to store session", http.StatusInternalServerError)
	}
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.redisClient.Get(ctx, sessionKey(token)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "SESSION_ERROR", "Failed to load session", http.StatusInternalServerError)
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "SESSION_ERROR", "Failed to unmarshal session", http.StatusInternalServerError)
	}
	return &session, nil
}

// UpdateUser applies edit to the stored user and writes the session back
// with its remaining lifetime unchanged. An error from edit aborts the
// update.
func (s *SessionService) UpdateUser(ctx context.Context, token string, edit func(*models.User) error) (*Session, error) {
	session, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := edit(&session.User); err != nil {
		return nil, err
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrap(err, "SESSION_ERROR", "Failed to marshal session", http.StatusInternalServerError)
	}
	// XX: a session that expired in the meantime stays gone.
	err = s.redisClient.SetArgs(ctx, sessionKey(token), sessionJSON, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if stderrors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "SESSION_ERROR", "Failed to store session", http.StatusInternalServerError)
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, token string) error {
	if err := s.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
		return errors.Wrap(err, "SESSION_ERROR", "Failed to delete session", http.StatusInternalServerError)
	}
	return nil
}
