package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"explorerhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_SaveGetDelete(t *testing.T) {
	mr, client := newTestRedis(t)
	sessions := NewSessionService(client, NewTokenInspector(""), 30*time.Minute)
	ctx := context.Background()

	saved, err := sessions.Save(ctx, models.AuthResponse{
		AccessToken: "mock_jwt_1_1700000000",
		User:        models.User{ID: "1", Email: "viajero@test.com", FullName: "Juan Viajero"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", saved.TokenType)

	for _, key := range mr.Keys() {
		assert.True(t, strings.HasPrefix(key, "session:"))
		assert.NotContains(t, key, "mock_jwt")
	}
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey("mock_jwt_1_1700000000")))

	got, err := sessions.Get(ctx, "mock_jwt_1_1700000000")
	require.NoError(t, err)
	assert.Equal(t, "Juan Viajero", got.User.DisplayName())

	require.NoError(t, sessions.Delete(ctx, "mock_jwt_1_1700000000"))
	_, err = sessions.Get(ctx, "mock_jwt_1_1700000000")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_TTLCappedByTokenExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	sessions := NewSessionService(client, NewTokenInspector(""), 24*time.Hour)
	now := time.Now()
	sessions.now = func() time.Time { return now }

	token := signToken(t, "backend", "viajero@test.com", now.Add(10*time.Minute))
	saved, err := sessions.Save(context.Background(), models.AuthResponse{AccessToken: token})
	require.NoError(t, err)

	assert.WithinDuration(t, now.Add(10*time.Minute), saved.ExpiresAt, time.Second)
	ttl := mr.TTL(sessionKey(token))
	assert.LessOrEqual(t, ttl, 10*time.Minute)
	assert.Greater(t, ttl, 9*time.Minute)
}

func TestSessionService_ExpiresInRedis(t *testing.T) {
	mr, client := newTestRedis(t)
	sessions := NewSessionService(client, NewTokenInspector(""), time.Minute)

	_, err := sessions.Save(context.Background(), models.AuthResponse{AccessToken: "opaque"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = sessions.Get(context.Background(), "opaque")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_RejectsMissingToken(t *testing.T) {
	_, client := newTestRedis(t)
	sessions := NewSessionService(client, NewTokenInspector(""), time.Minute)

	_, err := sessions.Save(context.Background(), models.AuthResponse{})
	assert.Error(t, err)
}

func TestSessionService_UpdateUserKeepsTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	sessions := NewSessionService(client, NewTokenInspector(""), 30*time.Minute)
	ctx := context.Background()

	_, err := sessions.Save(ctx, models.AuthResponse{AccessToken: "tok", User: models.User{ID: "1", Name: "Old"}})
	require.NoError(t, err)
	mr.FastForward(10 * time.Minute)

	updated, err := sessions.UpdateUser(ctx, "tok", func(u *models.User) error {
		u.Name = "New"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.User.Name)
	assert.Equal(t, 20*time.Minute, mr.TTL(sessionKey("tok")))

	got, err := sessions.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "New", got.User.Name)
}

func TestSessionService_UpdateUserMissingSession(t *testing.T) {
	_, client := newTestRedis(t)
	sessions := NewSessionService(client, NewTokenInspector(""), time.Minute)

	_, err := sessions.UpdateUser(context.Background(), "nope", func(*models.User) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_UpdateUserEditError(t *testing.T) {
	_, client := newTestRedis(t)
	sessions := NewSessionService(client, NewTokenInspector(""), time.Minute)
	ctx := context.Background()

	_, err := sessions.Save(ctx, models.AuthResponse{AccessToken: "tok", User: models.User{ID: "1", Name: "Old"}})
	require.NoError(t, err)

	_, err = sessions.UpdateUser(ctx, "tok", func(*models.User) error { return ErrNotBusiness })
	assert.ErrorIs(t, err, ErrNotBusiness)

	got, err := sessions.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Old", got.User.Name)
}
