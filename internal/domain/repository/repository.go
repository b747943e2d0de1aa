// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"errors"
	"time"

	"yt-script-ai-api/internal/domain/entity"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository 生成会话仓储接口
type SessionRepository interface {
	// Save 创建或覆盖会话
	Save(ctx context.Context, session *entity.Session) error

	// Get 根据 ID 获取会话，不存在时返回 ErrSessionNotFound
	Get(ctx context.Context, id string) (*entity.Session, error)

	// Delete 删除会话
	Delete(ctx context.Context, id string) error
}

// SubmissionLock 会话级提交锁，保证同一会话同时只有一个生成请求
type SubmissionLock interface {
	// Acquire 尝试加锁，已被占用时返回 false
	Acquire(ctx context.Context, sessionID string, ttl time.Duration) (token string, ok bool, err error)

	// Release 释放锁，token 不匹配时不做任何事
	Release(ctx context.Context, sessionID, token string) error
}
