package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// releaseScript 仅当令牌匹配时删除锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionLock 基于 SET NX PX 的会话提交锁，多实例部署时保证同一会话只有一个生成在进行
type SubmissionLock struct {
	client *Client
}

// NewSubmissionLock 创建提交锁
func NewSubmissionLock(client *Client) *SubmissionLock {
	return &SubmissionLock{client: client}
}

func (l *SubmissionLock) key(sessionID string) string {
	return l.client.Key("session", sessionID, "lock")
}

// Acquire 尝试加锁，成功时返回释放用的令牌
func (l *SubmissionLock) Acquire(ctx context.Context, sessionID string, ttl time.Duration) (string, bool, error) {
	ctx, span := tracer.Start(ctx, "lock.Acquire")
	defer span.End()

	token := uuid.NewString()
	ok, err := l.client.rdb.SetNX(ctx, l.key(sessionID), token, ttl).Result()
	if err != nil {
		span.RecordError(err)
		return "", false, err
	}
	span.SetAttributes(attribute.Bool("lock.acquired", ok))
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release 释放锁，令牌不匹配时不做任何操作
func (l *SubmissionLock) Release(ctx context.Context, sessionID, token string) error {
	ctx, span := tracer.Start(ctx, "lock.Release")
	defer span.End()

	if err := releaseScript.Run(ctx, l.client.rdb, []string{l.key(sessionID)}, token).Err(); err != nil && !IsNil(err) {
		span.RecordError(err)
		return err
	}
	return nil
}
