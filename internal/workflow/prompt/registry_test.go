package prompt

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ScriptPackageTemplate(t *testing.T) {
	r := NewRegistry()

	tpl, err := r.ChatTemplate(PromptScriptPackageV1)
	require.NoError(t, err)

	again, err := r.ChatTemplate(PromptScriptPackageV1)
	require.NoError(t, err)
	assert.Same(t, tpl, again)

	msgs, err := tpl.Format(context.Background(), map[string]any{
		"target_words":        4500,
		"word_distribution":   "dist",
		"title":               "Título {com chaves}",
		"channel_name":        "Canal",
		"channel_description": "Desc",
		"playlist":            "Lista",
		"video_length":        "~4.500 palavras (15-20 min)",
		"language":            "Português_BR",
		"part_guidance":       "5-6 partes",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "- Tema/Ideia do Título do Vídeo: Título {com chaves}")
	assert.Contains(t, msgs[0].Content, "Duração Alvo do Vídeo: ~4.500 palavras (15-20 min) (Total de 4500 palavras)")
	assert.Contains(t, msgs[0].Content, "estritamente Português_BR.")
}

func TestRegistry_UnknownPrompt(t *testing.T) {
	_, err := NewRegistry().ChatTemplate("missing")
	require.Error(t, err)

	var nilRegistry *Registry
	_, err = nilRegistry.ChatTemplate(PromptScriptPackageV1)
	require.Error(t, err)
}
