package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"yt-script-ai-api/internal/config"
	"yt-script-ai-api/internal/workflow/port"
)

// Resolver 按提供商名称构建并缓存结构化生成器
// 名称以 gemini 开头的提供商使用 Gemini 原生 SDK，其余走 OpenAI 兼容接口
type Resolver struct {
	cfg     *config.LLMConfig
	factory port.ChatModelFactory

	mu         sync.RWMutex
	generators map[string]port.StructuredGenerator
	group      singleflight.Group
}

// NewResolver 创建提供商解析器
func NewResolver(cfg *config.Config, factory port.ChatModelFactory) *Resolver {
	return &Resolver{
		cfg:        &cfg.LLM,
		factory:    factory,
		generators: make(map[string]port.StructuredGenerator),
	}
}

// Resolve 返回生成器与实际使用的提供商名称
func (r *Resolver) Resolve(_ context.Context, provider string) (port.StructuredGenerator, string, error) {
	name := strings.TrimSpace(provider)
	if name == "" {
		name = r.cfg.DefaultProvider
	}

	r.mu.RLock()
	gen, ok := r.generators[name]
	r.mu.RUnlock()
	if ok {
		return gen, name, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		r.mu.RLock()
		existing, ok := r.generators[name]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		providerCfg, ok := r.cfg.Providers[name]
		if !ok {
			return nil, providerError(name, port.KindUnknown, 0, fmt.Errorf("provider %s not found in LLM config", name))
		}

		var created port.StructuredGenerator
		if IsGeminiProvider(name) {
			created = NewGeminiGenerator(name, providerCfg)
		} else {
			created = NewOpenAIGenerator(name, providerCfg, r.factory)
		}

		r.mu.Lock()
		r.generators[name] = created
		r.mu.Unlock()
		return created, nil
	})
	if err != nil {
		return nil, "", err
	}
	return v.(port.StructuredGenerator), name, nil
}

// IsGeminiProvider 判断提供商是否走 Gemini 原生接口
func IsGeminiProvider(name string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(name)), "gemini")
}
