package script

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"yt-script-ai-api/internal/domain/entity"
	llmctx "yt-script-ai-api/internal/domain/service"
	wfnode "yt-script-ai-api/internal/workflow/node"
	"yt-script-ai-api/internal/workflow/port"
	"yt-script-ai-api/pkg/logger"
	"yt-script-ai-api/pkg/metrics"
	"yt-script-ai-api/pkg/tracer"
)

// DefaultTemperature 生成温度
const DefaultTemperature float32 = 0.8

// rawPreviewRunes 解析失败时日志中保留的原始输出长度
const rawPreviewRunes = 500

// GenerateOutput 一次成功生成的结果
type GenerateOutput struct {
	Script   *entity.GeneratedScript
	Prompt   *ScriptPrompt
	Provider string
	Model    string
	Warnings []string
	Duration time.Duration
}

// GeneratorOption 生成器可选配置
type GeneratorOption func(*Generator)

// WithTemperature 覆盖默认温度
func WithTemperature(t float32) GeneratorOption {
	return func(g *Generator) {
		if t > 0 {
			g.temperature = t
		}
	}
}

// WithProvider 指定提供商，空值使用默认提供商
func WithProvider(name string) GeneratorOption {
	return func(g *Generator) {
		g.provider = strings.TrimSpace(name)
	}
}

// Generator 脚本生成客户端：构建提示词、调用模型、解码结果
// 每次调用只请求一次，不做重试
type Generator struct {
	prompts     *PromptBuilder
	resolver    port.GeneratorResolver
	provider    string
	temperature float32
}

// NewGenerator 创建生成器
func NewGenerator(prompts *PromptBuilder, resolver port.GeneratorResolver, opts ...GeneratorOption) *Generator {
	g := &Generator{
		prompts:     prompts,
		resolver:    resolver,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate 为请求生成脚本包，失败时返回 *GenerationError
func (g *Generator) Generate(ctx context.Context, req entity.ScriptRequest) (*GenerateOutput, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, span := tracer.Start(ctx, "script.generate")
	defer span.End()

	out, err := g.generate(ctx, req)
	provider := g.provider
	if out != nil {
		provider = out.Provider
	}
	if provider == "" {
		provider = "default"
	}

	if err != nil {
		kind := port.KindUnknown
		if ge, ok := AsGenerationError(err); ok {
			kind = ge.Kind
		}
		metrics.ScriptGenerationTotal.WithLabelValues(provider, string(kind)).Inc()
		span.SetAttributes(attribute.String("script.error_kind", string(kind)))
		tracer.RecordError(span, err)
		logger.Error(ctx, "script generation failed", err,
			"provider", provider,
			"kind", string(kind),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	out.Duration = time.Since(start)
	metrics.ScriptGenerationTotal.WithLabelValues(provider, "success").Inc()
	metrics.ScriptGenerationDuration.WithLabelValues(provider).Observe(out.Duration.Seconds())
	words := out.Script.WordCount()
	metrics.ScriptWordCount.WithLabelValues(strconv.Itoa(out.Prompt.TargetWords)).Observe(float64(words))
	span.SetAttributes(
		attribute.String("llm.provider", out.Provider),
		attribute.String("llm.model", out.Model),
		attribute.Int("script.target_words", out.Prompt.TargetWords),
		attribute.Int("script.word_count", words),
		attribute.Int("script.parts", len(out.Script.MainContent)),
	)
	logger.Info(ctx, "script generated",
		"provider", out.Provider,
		"model", out.Model,
		"target_words", out.Prompt.TargetWords,
		"word_count", words,
		"parts", len(out.Script.MainContent),
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}

func (g *Generator) generate(ctx context.Context, req entity.ScriptRequest) (*GenerateOutput, error) {
	if g == nil || g.prompts == nil || g.resolver == nil {
		return nil, newGenerationError(port.KindUnknown, "script generator not configured", nil)
	}

	prompt, err := g.buildPrompt(ctx, req)
	if err != nil {
		return nil, newGenerationError(port.KindUnknown, "failed to build prompt", err)
	}
	if !prompt.BucketMatched {
		logger.Warn(ctx, "video length has no duration bucket, using default guidance",
			"video_length", req.VideoLength,
			"target_words", prompt.TargetWords,
		)
	}

	gen, providerName, err := g.resolver.Resolve(ctx, g.provider)
	if err != nil {
		return nil, newGenerationError(port.KindOf(err), "failed to resolve llm provider", err)
	}

	ctx = llmctx.WithOperationProvider(ctx, "script_package", providerName)
	ctx = logger.WithContext(ctx, logger.ProviderKey, providerName)

	resp, err := gen.GenerateStructured(ctx, &port.StructuredRequest{
		Prompt:      prompt.Text,
		Messages:    prompt.Messages,
		Schema:      ResponseSchema(),
		JSONSchema:  JSONSchema(ResponseSchema()),
		SchemaName:  ResponseSchemaName,
		Temperature: g.temperature,
	})
	if err != nil {
		kind := port.KindOf(err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			kind = port.KindNetwork
		}
		return nil, newGenerationError(kind, "llm call failed", err)
	}

	decoded, err := g.decode(ctx, resp.Text)
	if err != nil {
		return nil, err
	}
	for _, w := range decoded.Warnings {
		logger.Warn(ctx, "script package deviates from expected shape", "warning", w)
	}

	return &GenerateOutput{
		Script:   decoded.Script,
		Prompt:   prompt,
		Provider: resp.Provider,
		Model:    resp.Model,
		Warnings: decoded.Warnings,
	}, nil
}

func (g *Generator) buildPrompt(ctx context.Context, req entity.ScriptRequest) (*ScriptPrompt, error) {
	ctx, span := tracer.Start(ctx, "script.prompt")
	defer span.End()

	p, err := g.prompts.Build(ctx, req)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("script.target_words", p.TargetWords))
	return p, nil
}

func (g *Generator) decode(ctx context.Context, text string) (*DecodeResult, error) {
	_, span := tracer.Start(ctx, "script.decode")
	defer span.End()

	res, err := DecodeScript(text)
	if err != nil {
		tracer.RecordError(span, err)
		logger.Debug(ctx, "undecodable model response", "raw", wfnode.TruncateByRunes(text, rawPreviewRunes))
		return nil, err
	}
	return res, nil
}
