package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/domain/repository"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewClientFromRedis(rdb, "yt:"), mr
}

func TestClient_HealthCheck(t *testing.T) {
	c, mr := newTestClient(t)
	require.NoError(t, c.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, c.HealthCheck(context.Background()))
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)
	repo := NewSessionRepository(c, time.Hour)

	s := entity.NewSession("abc", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	req := entity.ScriptRequest{Title: "Café", VideoLength: "~4.500 palavras (15-20 min)", Language: "Português_BR"}
	require.NoError(t, s.BeginSubmit(req, time.Now().UTC()))
	require.NoError(t, repo.Save(ctx, s))

	assert.True(t, mr.Exists("yt:session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("yt:session:abc"))

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusSubmitting, got.Status)
	require.NotNil(t, got.Request)
	assert.Equal(t, "Café", got.Request.Title)
	assert.Equal(t, 1, got.Attempts)

	mr.FastForward(2 * time.Hour)
	_, err = repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	repo := NewSessionRepository(c, time.Hour)

	require.NoError(t, repo.Save(ctx, entity.NewSession("x", time.Now())))
	require.NoError(t, repo.Delete(ctx, "x"))
	_, err := repo.Get(ctx, "x")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSubmissionLock(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)
	lock := NewSubmissionLock(c)

	token, ok, err := lock.Acquire(ctx, "s1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = lock.Acquire(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// 令牌不匹配时不释放
	require.NoError(t, lock.Release(ctx, "s1", "other"))
	assert.True(t, mr.Exists("yt:session:s1:lock"))

	require.NoError(t, lock.Release(ctx, "s1", token))
	assert.False(t, mr.Exists("yt:session:s1:lock"))

	_, ok, err = lock.Acquire(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// 过期后可重新获取
	mr.FastForward(2 * time.Minute)
	_, ok, err = lock.Acquire(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	l := NewRateLimiter(c)
	key := "ratelimit:127.0.0.1:/v1/scripts/generate"

	for i := 0; i < 3; i++ {
		ok, remaining, err := l.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2-i, remaining)
	}

	ok, remaining, err := l.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)

	ok, _, err = l.Allow(ctx, "ratelimit:10.0.0.1:/v1/scripts/generate", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
