package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/domain/repository"
)

// SessionRepository 以 JSON 形式保存会话，每次写入刷新 TTL
type SessionRepository struct {
	client *Client
	ttl    time.Duration
}

// NewSessionRepository 创建 Redis 会话仓储
func NewSessionRepository(client *Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) key(id string) string {
	return r.client.Key("session", id)
}

// Save 保存会话
func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.set(ctx, r.key(session.ID), data, r.ttl)
}

// Get 获取会话
func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.get(ctx, r.key(id))
	if err != nil {
		if IsNil(err) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, err
	}
	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

// Delete 删除会话
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.del(ctx, r.key(id))
}
