package script

import (
	"context"
	"sync"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/workflow/port"
)

const validScriptJSON = `{
  "titles": ["Título A", "Título B", "Título C"],
  "hook": "Você já se perguntou?",
  "introduction": "Bem-vindo ao canal.",
  "mainContent": [
    {"part": 1, "content": "Primeira parte."},
    {"part": 2, "content": "Segunda parte."}
  ],
  "conclusion": "Obrigado por assistir.",
  "videoDescription": "Descrição otimizada.",
  "keywords": "café, receita, bebida",
  "thumbnailTexts": ["T1", "T2", "T3"],
  "thumbnailPrompts": ["P1", "P2", "P3"]
}`

func sampleScript() *entity.GeneratedScript {
	return &entity.GeneratedScript{
		Titles:       []string{"Título A", "Título B", "Título C"},
		Hook:         "Você já se perguntou?",
		Introduction: "Bem-vindo ao canal.",
		MainContent: []entity.MainContentPart{
			{Part: 1, Content: "Primeira parte."},
			{Part: 2, Content: "Segunda parte."},
		},
		Conclusion:       "Obrigado por assistir.",
		VideoDescription: "Descrição otimizada.",
		Keywords:         "café, receita, bebida",
		ThumbnailTexts:   []string{"T1", "T2", "T3"},
		ThumbnailPrompts: []string{"P1", "P2", "P3"},
	}
}

// fakeStructuredGenerator 记录请求并返回预设结果
type fakeStructuredGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []*port.StructuredRequest
	// block 非空时调用会阻塞直到 channel 关闭
	block chan struct{}
}

func (f *fakeStructuredGenerator) GenerateStructured(ctx context.Context, req *port.StructuredRequest) (*port.StructuredResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &port.StructuredResponse{Text: f.text, Provider: "fake", Model: "fake-model"}, nil
}

func (f *fakeStructuredGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeResolver struct {
	gen port.StructuredGenerator
	err error
}

func (r *fakeResolver) Resolve(_ context.Context, provider string) (port.StructuredGenerator, string, error) {
	if r.err != nil {
		return nil, "", r.err
	}
	if provider == "" {
		provider = "fake"
	}
	return r.gen, provider, nil
}

func newTestGenerator(gen port.StructuredGenerator) *Generator {
	return NewGenerator(NewPromptBuilder(nil), &fakeResolver{gen: gen})
}
