//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"yt-script-ai-api/internal/application/script"
	"yt-script-ai-api/internal/config"
	"yt-script-ai-api/internal/infrastructure/llm"
	"yt-script-ai-api/internal/interfaces/http/handler"
	"yt-script-ai-api/internal/interfaces/http/router"
	"yt-script-ai-api/internal/workflow/port"
	workflowprompt "yt-script-ai-api/internal/workflow/prompt"
)

// InitializeApp 初始化整个应用
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		StoreSet,
		LLMSet,
		ScriptSet,
		RouterSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// StoreSet 会话存储、提交锁与限流器，按配置选择 Redis 或进程内实现
var StoreSet = wire.NewSet(
	ProvideRedisClient,
	ProvideSessionRepository,
	ProvideSubmissionLock,
	ProvideRateLimiter,
	ProvideHealthChecker,
)

// LLMSet 模型提供商
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	llm.NewResolver,
	wire.Bind(new(port.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(port.GeneratorResolver), new(*llm.Resolver)),
)

// ScriptSet 脚本生成与会话
var ScriptSet = wire.NewSet(
	workflowprompt.NewRegistry,
	script.NewPromptBuilder,
	ProvideGenerator,
	ProvideSessionService,
	wire.Bind(new(script.ScriptGenerator), new(*script.Generator)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewOptionsHandler,
	handler.NewScriptHandler,
	handler.NewSessionHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
