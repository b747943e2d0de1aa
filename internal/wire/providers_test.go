package wire

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-script-ai-api/internal/application/script"
	"yt-script-ai-api/internal/config"
	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/workflow/port"
	"yt-script-ai-api/internal/workflow/prompt"
)

const scriptJSON = `{
  "titles": ["A", "B", "C"],
  "hook": "H",
  "introduction": "I",
  "mainContent": [{"part": 1, "content": "C1"}],
  "conclusion": "F",
  "videoDescription": "D",
  "keywords": "k",
  "thumbnailTexts": ["T1", "T2", "T3"],
  "thumbnailPrompts": ["P1", "P2", "P3"]
}`

type recordingGenerator struct {
	mu  sync.Mutex
	req *port.StructuredRequest
}

func (g *recordingGenerator) GenerateStructured(_ context.Context, req *port.StructuredRequest) (*port.StructuredResponse, error) {
	g.mu.Lock()
	g.req = req
	g.mu.Unlock()
	return &port.StructuredResponse{Text: scriptJSON, Provider: "openai", Model: "m"}, nil
}

type recordingResolver struct {
	gen      *recordingGenerator
	provider string
}

func (r *recordingResolver) Resolve(_ context.Context, provider string) (port.StructuredGenerator, string, error) {
	r.provider = provider
	return r.gen, provider, nil
}

func TestProvideGenerator_FixedTemperature(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = "openai"
	cfg.LLM.Providers = map[string]config.ProviderConfig{"openai": {Model: "m"}}

	res := &recordingResolver{gen: &recordingGenerator{}}
	gen := ProvideGenerator(cfg, script.NewPromptBuilder(prompt.NewRegistry()), res)

	_, err := gen.Generate(context.Background(), entity.ScriptRequest{
		Title:       "Como fazer café",
		VideoLength: entity.DefaultVideoLength().Label,
		Language:    entity.DefaultLanguage,
	})
	require.NoError(t, err)

	assert.Equal(t, "openai", res.provider)
	require.NotNil(t, res.gen.req)
	assert.InDelta(t, float64(script.DefaultTemperature), float64(res.gen.req.Temperature), 1e-6)
	assert.InDelta(t, 0.8, float64(res.gen.req.Temperature), 1e-6)
}
