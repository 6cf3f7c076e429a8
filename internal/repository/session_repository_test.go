package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-care/complaint-service/internal/domain"
)

// setupTestRedis returns a client against a local Redis, skipping the test
// when none is reachable.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379", DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return client
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	repo := NewSessionRepository(setupTestRedis(t))
	ctx := context.Background()

	session := &domain.Session{
		Token:     "test-token",
		UserID:    "u1",
		Username:  "alice",
		Email:     "alice@x.com",
		Role:      domain.RoleResident,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.Get(ctx, "test-token")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Role, got.Role)

	require.NoError(t, repo.Delete(ctx, "test-token"))
	_, err = repo.Get(ctx, "test-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_UnknownToken(t *testing.T) {
	repo := NewSessionRepository(setupTestRedis(t))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = repo.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_RejectsExpired(t *testing.T) {
	repo := NewSessionRepository(setupTestRedis(t))

	err := repo.Create(context.Background(), &domain.Session{
		Token:     "stale",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	assert.Error(t, err)
}
