package script

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/workflow/port"
)

func coffeeRequest() entity.ScriptRequest {
	return entity.ScriptRequest{
		Title:       "Como fazer café",
		VideoLength: "~3.000 palavras (10-15 min)",
		Language:    "Inglês_USA",
	}
}

func TestGenerator_Success(t *testing.T) {
	fake := &fakeStructuredGenerator{text: validScriptJSON}
	g := newTestGenerator(fake)

	out, err := g.Generate(context.Background(), coffeeRequest())
	require.NoError(t, err)

	assert.Equal(t, sampleScript(), out.Script)
	assert.Equal(t, "fake", out.Provider)
	assert.Equal(t, "fake-model", out.Model)
	assert.Equal(t, 3000, out.Prompt.TargetWords)

	require.Equal(t, 1, fake.calls())
	req := fake.requests[0]
	assert.InDelta(t, 0.8, float64(req.Temperature), 1e-6)
	assert.NotNil(t, req.Schema)
	assert.Equal(t, "object", req.JSONSchema["type"])
	assert.Equal(t, ResponseSchemaName, req.SchemaName)
	assert.Contains(t, req.Prompt, "estritamente Inglês_USA")
	assert.Len(t, req.Messages, 1)
}

func TestGenerator_ValidationStopsBeforeProvider(t *testing.T) {
	fake := &fakeStructuredGenerator{text: validScriptJSON}
	g := newTestGenerator(fake)

	req := coffeeRequest()
	req.Title = "  "
	_, err := g.Generate(context.Background(), req)

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, entity.MsgTitleRequired, verr.Message)
	assert.Equal(t, 0, fake.calls())
}

func TestGenerator_InvalidJSON(t *testing.T) {
	g := newTestGenerator(&fakeStructuredGenerator{text: "{invalid json"})

	_, err := g.Generate(context.Background(), coffeeRequest())
	ge := requireKind(t, err, port.KindParse)

	appErr := ge.ToAppError()
	assert.Equal(t, 502, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "Falha ao gerar o roteiro: ")
}

func TestGenerator_ProviderErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want port.ErrorKind
	}{
		{"auth", &port.ProviderError{Kind: port.KindAuth, Provider: "fake", StatusCode: 401, Err: errors.New("bad key")}, port.KindAuth},
		{"network", &port.ProviderError{Kind: port.KindNetwork, Provider: "fake", Err: errors.New("dial tcp")}, port.KindNetwork},
		{"deadline", context.DeadlineExceeded, port.KindNetwork},
		{"plain", errors.New("boom"), port.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(&fakeStructuredGenerator{err: tc.err})
			_, err := g.Generate(context.Background(), coffeeRequest())
			requireKind(t, err, tc.want)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGenerator_ResolverError(t *testing.T) {
	resolveErr := &port.ProviderError{Kind: port.KindAuth, Provider: "gemini", Err: errors.New("api key is not configured")}
	g := NewGenerator(NewPromptBuilder(nil), &fakeResolver{err: resolveErr})

	_, err := g.Generate(context.Background(), coffeeRequest())
	requireKind(t, err, port.KindAuth)
}

func TestGenerator_Options(t *testing.T) {
	fake := &fakeStructuredGenerator{text: validScriptJSON}
	g := NewGenerator(NewPromptBuilder(nil), &fakeResolver{gen: fake}, WithTemperature(0.5), WithProvider(" openai "))

	out, err := g.Generate(context.Background(), coffeeRequest())
	require.NoError(t, err)
	assert.Equal(t, "fake", out.Provider)
	assert.InDelta(t, 0.5, float64(fake.requests[0].Temperature), 1e-6)
	assert.Equal(t, "openai", g.provider)
}

func TestGenerationError_UnknownMessage(t *testing.T) {
	ge := &GenerationError{Kind: port.KindUnknown}
	assert.Equal(t, entity.MsgUnknownError, ge.ToAppError().Message)
	assert.Equal(t, 500, ge.ToAppError().HTTPStatus)
}
