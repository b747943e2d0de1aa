package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/domain/repository"
)

func TestSessionRepository_SaveGetCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	s := entity.NewSession("s1", time.Now())
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusIdle, got.Status)

	// 修改副本不影响存储
	got.Status = entity.SessionStatusFailed
	again, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusIdle, again.Status)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, entity.NewSession("s1", now)))
	now = now.Add(2 * time.Minute)

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	assert.Equal(t, 0, repo.Len())
}

func TestSubmissionLock(t *testing.T) {
	ctx := context.Background()
	lock := NewSubmissionLock()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lock.now = func() time.Time { return now }

	token, ok, err := lock.Acquire(ctx, "s1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = lock.Acquire(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// 错误的 token 不会释放锁
	require.NoError(t, lock.Release(ctx, "s1", "other"))
	_, ok, _ = lock.Acquire(ctx, "s1", time.Minute)
	assert.False(t, ok)

	require.NoError(t, lock.Release(ctx, "s1", token))
	_, ok, _ = lock.Acquire(ctx, "s1", time.Minute)
	assert.True(t, ok)

	// 过期后可重新获取
	now = now.Add(2 * time.Minute)
	_, ok, _ = lock.Acquire(ctx, "s1", time.Minute)
	assert.True(t, ok)
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewRateLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ok, remaining, err := l.Allow(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining, _ = l.Allow(ctx, "k", 2, time.Minute)
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	ok, _, _ = l.Allow(ctx, "k", 2, time.Minute)
	assert.False(t, ok)

	// 其他键互不影响
	ok, _, _ = l.Allow(ctx, "other", 2, time.Minute)
	assert.True(t, ok)

	now = now.Add(61 * time.Second)
	ok, _, _ = l.Allow(ctx, "k", 2, time.Minute)
	assert.True(t, ok)
}

func TestSessionRepository_SaveSweepsExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, repo.Save(ctx, entity.NewSession(fmt.Sprintf("s%d", i), now)))
	}
	require.Equal(t, 1000, repo.Len())

	now = now.Add(48 * time.Hour)
	require.NoError(t, repo.Save(ctx, entity.NewSession("fresh", now)))
	assert.Equal(t, 1, repo.Len())

	_, err := repo.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestRateLimiter_SweepsIdleKeys(t *testing.T) {
	ctx := context.Background()
	l := NewRateLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		ok, _, err := l.Allow(ctx, fmt.Sprintf("ip-%d", i), 5, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, 1000, l.Len())

	now = now.Add(2 * time.Minute)
	ok, _, err := l.Allow(ctx, "latest", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestRateLimiter_SweepKeepsActiveKeys(t *testing.T) {
	ctx := context.Background()
	l := NewRateLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, _, _ = l.Allow(ctx, "idle", 2, time.Minute)
	now = now.Add(50 * time.Second)
	_, _, _ = l.Allow(ctx, "busy", 2, time.Hour)
	_, _, _ = l.Allow(ctx, "busy", 2, time.Hour)

	now = now.Add(70 * time.Second)
	ok, _, _ := l.Allow(ctx, "busy", 2, time.Hour)
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())
}
