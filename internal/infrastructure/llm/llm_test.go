package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"yt-script-ai-api/internal/config"
	"yt-script-ai-api/internal/workflow/port"
)

const scriptJSON = `{"hook":"Olá"}`

func testSchema() *genai.Schema {
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{"hook": {Type: genai.TypeString}},
		Required:   []string{"hook"},
	}
}

func TestGeminiGenerator_Success(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-pro:generateContent"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"hook\":\"Olá\"}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 34}
		}`))
	}))
	defer srv.Close()

	g := NewGeminiGenerator("gemini", config.ProviderConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.5-pro",
		Timeout: 5 * time.Second,
	})

	resp, err := g.GenerateStructured(context.Background(), &port.StructuredRequest{
		Prompt:      "gere o roteiro",
		Schema:      testSchema(),
		Temperature: 0.8,
	})
	require.NoError(t, err)
	assert.Equal(t, scriptJSON, resp.Text)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, "gemini-2.5-pro", resp.Model)
	assert.Equal(t, 12, resp.PromptTokens)
	assert.Equal(t, 34, resp.CompletionTokens)

	genCfg, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", body)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.NotNil(t, genCfg["responseSchema"])
	assert.InDelta(t, 0.8, genCfg["temperature"], 1e-6)
}

func TestGeminiGenerator_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"code": 401, "message": "API key not valid", "status": "UNAUTHENTICATED"}}`))
	}))
	defer srv.Close()

	g := NewGeminiGenerator("gemini", config.ProviderConfig{APIKey: "bad", BaseURL: srv.URL})
	_, err := g.GenerateStructured(context.Background(), &port.StructuredRequest{Prompt: "x", Temperature: 0.8})
	require.Error(t, err)
	assert.Equal(t, port.KindAuth, port.KindOf(err))
}

func TestGeminiGenerator_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"code": 500, "message": "internal", "status": "INTERNAL"}}`))
	}))
	defer srv.Close()

	g := NewGeminiGenerator("gemini", config.ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := g.GenerateStructured(context.Background(), &port.StructuredRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, port.KindProvider, port.KindOf(err))
}

func TestGeminiGenerator_MissingKey(t *testing.T) {
	g := NewGeminiGenerator("gemini", config.ProviderConfig{})
	_, err := g.GenerateStructured(context.Background(), &port.StructuredRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, port.KindAuth, port.KindOf(err))
}

func TestGeminiGenerator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewGeminiGenerator("gemini", config.ProviderConfig{APIKey: "k", BaseURL: url, Timeout: time.Second})
	_, err := g.GenerateStructured(context.Background(), &port.StructuredRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, port.KindNetwork, port.KindOf(err))
}

// openAIStub 模拟 OpenAI chat/completions 接口
type openAIStub struct {
	mu      sync.Mutex
	bodies  []map[string]any
	handler func(call int, body map[string]any) (int, string)
}

func (s *openAIStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	s.mu.Lock()
	s.bodies = append(s.bodies, body)
	call := len(s.bodies)
	s.mu.Unlock()

	status, resp := s.handler(call, body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp))
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12},
	})
	return string(b)
}

func newOpenAITestGenerator(t *testing.T, stub *openAIStub) *OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := &config.Config{LLM: config.LLMConfig{
		DefaultProvider: "openai",
		Providers: map[string]config.ProviderConfig{
			"openai": {APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4o", Timeout: 5 * time.Second},
		},
	}}
	return NewOpenAIGenerator("openai", cfg.LLM.Providers["openai"], NewEinoFactory(cfg))
}

func structuredRequest() *port.StructuredRequest {
	return &port.StructuredRequest{
		Prompt:      "gere o roteiro",
		Messages:    []*schema.Message{schema.UserMessage("gere o roteiro")},
		JSONSchema:  map[string]any{"type": "object"},
		SchemaName:  "youtube_script_package",
		Temperature: 0.8,
	}
}

func TestOpenAIGenerator_JSONSchema(t *testing.T) {
	stub := &openAIStub{handler: func(int, map[string]any) (int, string) {
		return http.StatusOK, completion(scriptJSON)
	}}
	g := newOpenAITestGenerator(t, stub)

	resp, err := g.GenerateStructured(context.Background(), structuredRequest())
	require.NoError(t, err)
	assert.Equal(t, scriptJSON, resp.Text)
	assert.Equal(t, 5, resp.PromptTokens)
	assert.Equal(t, 7, resp.CompletionTokens)

	require.Len(t, stub.bodies, 1)
	rf, ok := stub.bodies[0]["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", rf["type"])
}

func TestOpenAIGenerator_FallbackWithoutSchema(t *testing.T) {
	stub := &openAIStub{handler: func(_ int, body map[string]any) (int, string) {
		if _, ok := body["response_format"]; ok {
			return http.StatusBadRequest, `{"error":{"message":"response_format json_schema is not supported","type":"invalid_request_error"}}`
		}
		return http.StatusOK, completion(scriptJSON)
	}}
	g := newOpenAITestGenerator(t, stub)

	resp, err := g.GenerateStructured(context.Background(), structuredRequest())
	require.NoError(t, err)
	assert.Equal(t, scriptJSON, resp.Text)
	require.Len(t, stub.bodies, 2)
	_, has := stub.bodies[1]["response_format"]
	assert.False(t, has)
}

func TestOpenAIGenerator_AuthError(t *testing.T) {
	stub := &openAIStub{handler: func(int, map[string]any) (int, string) {
		return http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`
	}}
	g := newOpenAITestGenerator(t, stub)

	_, err := g.GenerateStructured(context.Background(), structuredRequest())
	require.Error(t, err)
	assert.Equal(t, port.KindAuth, port.KindOf(err))
	assert.Len(t, stub.bodies, 1)
}

// 只有 response_format 被拒绝时才会再发一次，其余失败一律单次
func TestOpenAIGenerator_SingleAttemptOnFailure(t *testing.T) {
	stub := &openAIStub{handler: func(int, map[string]any) (int, string) {
		return http.StatusInternalServerError, `{"error":{"message":"upstream overloaded","type":"server_error"}}`
	}}
	g := newOpenAITestGenerator(t, stub)

	_, err := g.GenerateStructured(context.Background(), structuredRequest())
	require.Error(t, err)
	assert.Equal(t, port.KindProvider, port.KindOf(err))
	assert.Len(t, stub.bodies, 1)
}

func TestResolver(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{
		DefaultProvider: "gemini",
		Providers: map[string]config.ProviderConfig{
			"gemini": {APIKey: "k"},
			"openai": {APIKey: "k", Model: "gpt-4o"},
		},
	}}
	r := NewResolver(cfg, NewEinoFactory(cfg))

	gen, name, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "gemini", name)
	assert.IsType(t, &GeminiGenerator{}, gen)

	again, _, err := r.Resolve(context.Background(), "gemini")
	require.NoError(t, err)
	assert.Same(t, gen, again)

	gen, name, err = r.Resolve(context.Background(), " openai ")
	require.NoError(t, err)
	assert.Equal(t, "openai", name)
	assert.IsType(t, &OpenAIGenerator{}, gen)

	_, _, err = r.Resolve(context.Background(), "missing")
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, port.KindAuth, classifyStatus(401))
	assert.Equal(t, port.KindAuth, classifyStatus(403))
	assert.Equal(t, port.KindNetwork, classifyStatus(429))
	assert.Equal(t, port.KindProvider, classifyStatus(503))
	assert.Equal(t, port.KindNetwork, classifyTransport(context.DeadlineExceeded))
	assert.Equal(t, port.KindUnknown, classifyTransport(errors.New("boom")))
}
