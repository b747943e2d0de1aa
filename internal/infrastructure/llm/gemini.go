package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"

	"yt-script-ai-api/internal/config"
	llmctx "yt-script-ai-api/internal/domain/service"
	"yt-script-ai-api/internal/workflow/port"
	"yt-script-ai-api/pkg/logger"
	"yt-script-ai-api/pkg/tracer"
)

const defaultGeminiModel = "gemini-2.5-pro"

// GeminiGenerator 通过 Gemini 原生 responseSchema 生成结构化 JSON
type GeminiGenerator struct {
	name string
	cfg  config.ProviderConfig

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGeminiGenerator 创建 Gemini 生成器，客户端在首次调用时建立
func NewGeminiGenerator(name string, cfg config.ProviderConfig) *GeminiGenerator {
	return &GeminiGenerator{name: name, cfg: cfg}
}

func (g *GeminiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		if strings.TrimSpace(g.cfg.APIKey) == "" {
			g.clientErr = providerError(g.name, port.KindAuth, 0, errMissingAPIKey)
			return
		}
		cc := &genai.ClientConfig{
			APIKey:  g.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if g.cfg.Timeout > 0 {
			cc.HTTPClient = &http.Client{Timeout: g.cfg.Timeout}
		}
		if base := strings.TrimSpace(g.cfg.BaseURL); base != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			g.clientErr = providerError(g.name, port.KindUnknown, 0, fmt.Errorf("create gemini client: %w", err))
			return
		}
		g.client = client
	})
	return g.client, g.clientErr
}

func (g *GeminiGenerator) model(req *port.StructuredRequest) string {
	if m := strings.TrimSpace(req.Model); m != "" {
		return m
	}
	if m := strings.TrimSpace(g.cfg.Model); m != "" {
		return m
	}
	return defaultGeminiModel
}

// GenerateStructured 发送单条文本提示词并要求 application/json 输出
func (g *GeminiGenerator) GenerateStructured(ctx context.Context, req *port.StructuredRequest) (*port.StructuredResponse, error) {
	if req == nil {
		return nil, errors.New("structured request is nil")
	}
	modelName := g.model(req)

	ctx, span := tracer.Start(ctx, "llm.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", g.name),
		attribute.String("llm.model", modelName),
		attribute.String("llm.operation", llmctx.OperationFromContext(ctx)),
	)

	client, err := g.getClient(ctx)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	gc := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if n := req.MaxTokens; n > 0 {
		gc.MaxOutputTokens = int32(n)
	} else if g.cfg.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(g.cfg.MaxTokens)
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), gc)
	elapsed := time.Since(start)
	if err != nil {
		perr := g.classify(err)
		observeCall(g.name, modelName, string(perr.Kind), elapsed)
		tracer.RecordError(span, perr)
		return nil, perr
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		perr := providerError(g.name, port.KindProvider, 0, fmt.Errorf("empty response (%s)", emptyReason(resp)))
		observeCall(g.name, modelName, string(perr.Kind), elapsed)
		tracer.RecordError(span, perr)
		return nil, perr
	}

	out := &port.StructuredResponse{Text: text, Provider: g.name, Model: modelName}
	if u := resp.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.CompletionTokens = int(u.CandidatesTokenCount)
	}
	observeCall(g.name, modelName, "success", elapsed)
	observeTokens(g.name, modelName, out.PromptTokens, out.CompletionTokens)
	span.SetAttributes(
		attribute.Int("llm.prompt_tokens", out.PromptTokens),
		attribute.Int("llm.completion_tokens", out.CompletionTokens),
	)
	logger.Debug(ctx, "gemini call finished",
		"model", modelName,
		"prompt_tokens", out.PromptTokens,
		"completion_tokens", out.CompletionTokens,
		"duration_ms", elapsed.Milliseconds(),
	)
	return out, nil
}

// classify 将 SDK 错误映射为 ProviderError
func (g *GeminiGenerator) classify(err error) *port.ProviderError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return providerError(g.name, classifyStatus(apiErr.Code), apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return providerError(g.name, classifyStatus(apiErrPtr.Code), apiErrPtr.Code, err)
	}
	return providerError(g.name, classifyTransport(err), 0, err)
}

func emptyReason(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return "nil response"
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "prompt blocked: " + string(fb.BlockReason)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].FinishReason != "" {
		return "finish reason: " + string(resp.Candidates[0].FinishReason)
	}
	return "no candidates"
}
