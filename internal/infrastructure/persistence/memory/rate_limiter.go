package memory

import (
	"context"
	"sync"
	"time"
)

type rateWindow struct {
	hits   []time.Time
	window time.Duration
}

// RateLimiter 进程内滑动窗口限流器，未启用 Redis 时使用
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time

	lastSweep time.Time
}

// NewRateLimiter 创建进程内限流器
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// Allow 检查是否允许请求，同时返回窗口内剩余配额
func (l *RateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	w, ok := l.windows[key]
	if !ok {
		w = &rateWindow{}
		l.windows[key] = w
	}
	w.window = window

	cutoff := now.Add(-window)
	kept := w.hits[:0]
	for _, t := range w.hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.hits = kept

	if len(kept) >= limit {
		if len(kept) == 0 {
			delete(l.windows, key)
		}
		return false, 0, nil
	}
	w.hits = append(kept, now)
	return true, limit - len(kept) - 1, nil
}

// sweepLocked 删除窗口内已无请求记录的键
func (l *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, w := range l.windows {
		if len(w.hits) == 0 || !w.hits[len(w.hits)-1].After(now.Add(-w.window)) {
			delete(l.windows, key)
		}
	}
}

// Len 当前跟踪的限流键数量
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
