package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"yt-script-ai-api/internal/config"
	wfnode "yt-script-ai-api/internal/workflow/node"
	"yt-script-ai-api/internal/workflow/port"
	"yt-script-ai-api/pkg/logger"
)

// OpenAIGenerator 通过 Eino ChatModel 调用 OpenAI 兼容接口
// 优先使用 response_format json_schema，提供商不支持时退回纯提示词约束
type OpenAIGenerator struct {
	name    string
	cfg     config.ProviderConfig
	factory port.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*openaiCallState, *schema.Message]
	chainErr  error
}

type openaiCallState struct {
	Req      *port.StructuredRequest
	Messages []*schema.Message
	OutMsg   *schema.Message
}

// NewOpenAIGenerator 创建 OpenAI 兼容生成器
func NewOpenAIGenerator(name string, cfg config.ProviderConfig, factory port.ChatModelFactory) *OpenAIGenerator {
	return &OpenAIGenerator{name: name, cfg: cfg, factory: factory}
}

// GenerateStructured 执行一次结构化生成
func (g *OpenAIGenerator) GenerateStructured(ctx context.Context, req *port.StructuredRequest) (*port.StructuredResponse, error) {
	if req == nil {
		return nil, errors.New("structured request is nil")
	}
	if strings.TrimSpace(g.cfg.APIKey) == "" {
		return nil, providerError(g.name, port.KindAuth, 0, errMissingAPIKey)
	}

	chain, err := g.getChain()
	if err != nil {
		return nil, providerError(g.name, port.KindUnknown, 0, err)
	}

	msg, err := chain.Invoke(ctx, &openaiCallState{Req: req})
	if err != nil {
		return nil, g.classify(err)
	}

	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return nil, providerError(g.name, port.KindProvider, 0, errors.New("empty response"))
	}

	out := &port.StructuredResponse{Text: text, Provider: g.name, Model: g.model(req)}
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		out.PromptTokens = msg.ResponseMeta.Usage.PromptTokens
		out.CompletionTokens = msg.ResponseMeta.Usage.CompletionTokens
	}
	return out, nil
}

func (g *OpenAIGenerator) model(req *port.StructuredRequest) string {
	if m := strings.TrimSpace(req.Model); m != "" {
		return m
	}
	return g.cfg.Model
}

func (g *OpenAIGenerator) getChain() (compose.Runnable[*openaiCallState, *schema.Message], error) {
	g.chainOnce.Do(func() {
		g.chain, g.chainErr = g.buildChain(context.Background())
	})
	return g.chain, g.chainErr
}

func (g *OpenAIGenerator) buildChain(ctx context.Context) (compose.Runnable[*openaiCallState, *schema.Message], error) {
	chain := compose.NewChain[*openaiCallState, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *openaiCallState) (*openaiCallState, error) {
			if st == nil || st.Req == nil {
				return nil, fmt.Errorf("state is nil")
			}
			st.Messages = st.Req.Messages
			if len(st.Messages) == 0 {
				st.Messages = []*schema.Message{schema.UserMessage(st.Req.Prompt)}
			}
			return st, nil
		}),
		compose.WithNodeName("script.messages"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *openaiCallState) (*openaiCallState, error) {
			chatModel, err := g.factory.Get(ctx, g.name)
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, g.modelOptions(st.Req, true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"provider", g.name,
					"model", g.model(st.Req),
					"error", err.Error(),
				)
				outMsg, err = chatModel.Generate(ctx, st.Messages, g.modelOptions(st.Req, false)...)
			}
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("script.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *openaiCallState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("script.finalize"),
	)

	return chain.Compile(ctx)
}

func (g *OpenAIGenerator) modelOptions(req *port.StructuredRequest, enableSchema bool) []model.Option {
	opts := make([]model.Option, 0, 4)
	if req.Temperature > 0 {
		opts = append(opts, model.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}
	if m := strings.TrimSpace(req.Model); m != "" {
		opts = append(opts, model.WithModel(m))
	}

	if enableSchema && req.JSONSchema != nil {
		name := req.SchemaName
		if name == "" {
			name = "structured_output"
		}
		opts = append(opts, openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   name,
					"strict": false,
					"schema": req.JSONSchema,
				},
			},
		}))
	}
	return opts
}

var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// classify OpenAI 兼容接口只暴露错误文本，按文本中的状态码归类
func (g *OpenAIGenerator) classify(err error) *port.ProviderError {
	var pe *port.ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	if m := statusCodePattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return providerError(g.name, classifyStatus(code), code, err)
	}
	return providerError(g.name, classifyTransport(err), 0, err)
}
