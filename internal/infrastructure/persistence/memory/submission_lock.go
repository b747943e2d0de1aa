package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type lockEntry struct {
	token     string
	expiresAt time.Time
}

// SubmissionLock 进程内提交锁
type SubmissionLock struct {
	mu    sync.Mutex
	locks map[string]lockEntry
	now   func() time.Time
}

// NewSubmissionLock 创建进程内提交锁
func NewSubmissionLock() *SubmissionLock {
	return &SubmissionLock{
		locks: make(map[string]lockEntry),
		now:   time.Now,
	}
}

// Acquire 尝试加锁，过期的锁视为已释放
func (l *SubmissionLock) Acquire(_ context.Context, sessionID string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if cur, ok := l.locks[sessionID]; ok && now.Before(cur.expiresAt) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.locks[sessionID] = lockEntry{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

// Release 仅当 token 匹配时释放
func (l *SubmissionLock) Release(_ context.Context, sessionID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.locks[sessionID]; ok && cur.token == token {
		delete(l.locks, sessionID)
	}
	return nil
}
