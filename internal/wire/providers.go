package wire

import (
	"context"

	"yt-script-ai-api/internal/application/script"
	"yt-script-ai-api/internal/config"
	"yt-script-ai-api/internal/domain/repository"
	"yt-script-ai-api/internal/infrastructure/persistence/memory"
	"yt-script-ai-api/internal/infrastructure/persistence/redis"
	"yt-script-ai-api/internal/interfaces/http/handler"
	"yt-script-ai-api/internal/interfaces/http/middleware"
	"yt-script-ai-api/internal/interfaces/http/router"
	"yt-script-ai-api/internal/workflow/port"
	"yt-script-ai-api/pkg/logger"
)

// App 应用依赖容器
type App struct {
	Router   *router.Router
	Sessions *script.SessionService
}

// ProvideRedisClient 提供 Redis 客户端，未启用时返回 nil
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Error(context.Background(), "failed to close redis client", err)
		}
	}
	return client, cleanup, nil
}

// ProvideSessionRepository 按 session.store 选择会话仓储
func ProvideSessionRepository(cfg *config.Config, client *redis.Client) repository.SessionRepository {
	if cfg.Session.Store == "redis" && client != nil {
		return redis.NewSessionRepository(client, cfg.Session.TTL)
	}
	return memory.NewSessionRepository(cfg.Session.TTL)
}

// ProvideSubmissionLock 会话存储在 Redis 时使用分布式锁
func ProvideSubmissionLock(cfg *config.Config, client *redis.Client) repository.SubmissionLock {
	if cfg.Session.Store == "redis" && client != nil {
		return redis.NewSubmissionLock(client)
	}
	return memory.NewSubmissionLock()
}

// ProvideRateLimiter Redis 可用时跨实例限流，否则进程内限流
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client != nil {
		return redis.NewRateLimiter(client)
	}
	return memory.NewRateLimiter()
}

// ProvideHealthChecker Redis 未启用时不参与就绪检查
func ProvideHealthChecker(client *redis.Client) handler.HealthChecker {
	if client == nil {
		return nil
	}
	return client
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, checker handler.HealthChecker) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg.App.Version, checker)
}

// ProvideGenerator 使用默认提供商创建生成器，温度固定为 script.DefaultTemperature
func ProvideGenerator(cfg *config.Config, prompts *script.PromptBuilder, resolver port.GeneratorResolver) *script.Generator {
	return script.NewGenerator(prompts, resolver, script.WithProvider(cfg.LLM.DefaultProvider))
}

// ProvideSessionService 提供会话服务
func ProvideSessionService(cfg *config.Config, repo repository.SessionRepository, lock repository.SubmissionLock, generator *script.Generator) *script.SessionService {
	return script.NewSessionService(repo, lock, generator, cfg.Session.SubmitLockTTL)
}
