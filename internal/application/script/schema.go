package script

import (
	"google.golang.org/genai"
)

// ResponseSchemaName OpenAI json_schema 的名称
const ResponseSchemaName = "youtube_script_package"

// 脚本包字段名，与模型返回 JSON 的键一致
const (
	FieldTitles           = "titles"
	FieldHook             = "hook"
	FieldIntroduction     = "introduction"
	FieldMainContent      = "mainContent"
	FieldConclusion       = "conclusion"
	FieldVideoDescription = "videoDescription"
	FieldKeywords         = "keywords"
	FieldThumbnailTexts   = "thumbnailTexts"
	FieldThumbnailPrompts = "thumbnailPrompts"
)

var requiredFields = []string{
	FieldTitles,
	FieldHook,
	FieldIntroduction,
	FieldMainContent,
	FieldConclusion,
	FieldVideoDescription,
	FieldKeywords,
	FieldThumbnailTexts,
	FieldThumbnailPrompts,
}

// ResponseSchema 返回脚本包的响应结构声明，每次调用返回新实例
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			FieldTitles: {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3 opções de títulos criativos e otimizados para SEO para o vídeo.",
			},
			FieldHook: {
				Type:        genai.TypeString,
				Description: "Um gancho de 30 a 60 segundos, dependendo do tamanho do vídeo, para prender a atenção do espectador imediatamente.",
			},
			FieldIntroduction: {
				Type:        genai.TypeString,
				Description: "Uma introdução de 150 a 250 palavras, dependendo do tamanho do vídeo, que apresenta o tema e termina com um CTA para inscrição e like.",
			},
			FieldMainContent: {
				Type:        genai.TypeArray,
				Description: "O conteúdo principal do vídeo, dividido em 4 a 8 partes, dependendo do tamanho do vídeo, com um CTA de inscrição e like a cada 2 partes.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"part": {
							Type:        genai.TypeInteger,
							Description: "O número sequencial da parte do conteúdo.",
						},
						"content": {
							Type:        genai.TypeString,
							Description: "O texto detalhado para esta parte do roteiro.",
						},
					},
					Required:         []string{"part", "content"},
					PropertyOrdering: []string{"part", "content"},
				},
			},
			FieldConclusion: {
				Type:        genai.TypeString,
				Description: "Uma conclusão de até 250 palavras que resume os pontos principais e inclui um forte CTA para inscrição, like, comentário e compartilhamento.",
			},
			FieldVideoDescription: {
				Type:        genai.TypeString,
				Description: "Uma descrição de vídeo otimizada para SEO com até 250 palavras.",
			},
			FieldKeywords: {
				Type:        genai.TypeString,
				Description: "Uma linha única com 20 palavras-chave relevantes separadas por vírgula.",
			},
			FieldThumbnailTexts: {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3 opções de texto curtas e impactantes para a thumbnail do vídeo (para teste A/B).",
			},
			FieldThumbnailPrompts: {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3 prompts detalhados para uma IA de geração de imagem criar as 3 thumbnails correspondentes.",
			},
		},
		Required:         append([]string(nil), requiredFields...),
		PropertyOrdering: append([]string(nil), requiredFields...),
	}
}

// JSONSchema 将 genai.Schema 转为标准 JSON Schema
func JSONSchema(s *genai.Schema) map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{}
	switch s.Type {
	case genai.TypeObject:
		out["type"] = "object"
	case genai.TypeArray:
		out["type"] = "array"
	case genai.TypeString:
		out["type"] = "string"
	case genai.TypeInteger:
		out["type"] = "integer"
	case genai.TypeNumber:
		out["type"] = "number"
	case genai.TypeBoolean:
		out["type"] = "boolean"
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = JSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = JSONSchema(p)
		}
		out["properties"] = props
		out["additionalProperties"] = false
	}
	if len(s.Required) > 0 {
		req := make([]any, 0, len(s.Required))
		for _, r := range s.Required {
			req = append(req, r)
		}
		out["required"] = req
	}
	return out
}
