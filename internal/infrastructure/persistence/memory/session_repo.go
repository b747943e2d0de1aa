// Package memory 提供单进程部署使用的内存存储
package memory

import (
	"context"
	"sync"
	"time"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/domain/repository"
)

// sweepInterval 两次清理过期条目的最小间隔
const sweepInterval = time.Minute

type sessionEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// SessionRepository 内存会话仓储，会话在 ttl 内未更新即过期
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	now      func() time.Time

	lastSweep time.Time
}

// NewSessionRepository 创建内存会话仓储
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Save 保存会话副本，顺带清理已过期的会话
func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	entry := sessionEntry{session: *session}
	if r.ttl > 0 {
		entry.expiresAt = now.Add(r.ttl)
	}
	r.sessions[session.ID] = entry
	return nil
}

func (r *SessionRepository) sweepLocked(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now
	for id, entry := range r.sessions {
		if now.After(entry.expiresAt) {
			delete(r.sessions, id)
		}
	}
}

// Get 返回会话副本，调用方修改不会影响存储
func (r *SessionRepository) Get(_ context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, repository.ErrSessionNotFound
	}
	s := entry.session
	return &s, nil
}

// Delete 删除会话
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// Len 当前保存的会话数
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
