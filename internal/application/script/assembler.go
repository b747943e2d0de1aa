package script

import (
	"errors"
	"fmt"
	"strings"

	"yt-script-ai-api/internal/domain/entity"
)

// SectionID 可单独复制的脚本分区
type SectionID string

const (
	SectionTitles       SectionID = "titles"
	SectionHook         SectionID = "hook"
	SectionIntroduction SectionID = "introduction"
	SectionMainContent  SectionID = "main_content"
	SectionConclusion   SectionID = "conclusion"
	SectionDescription  SectionID = "description"
	SectionKeywords     SectionID = "keywords"
	SectionThumbnails   SectionID = "thumbnails"
)

const documentSeparator = "\n\n---\n\n"

type sectionMeta struct {
	ID SectionID
	// Header 完整文档中的大写分区标题
	Header string
	// Title 界面展示标题
	Title string
}

// sections 完整文档与渲染结果的分区顺序
var sections = []sectionMeta{
	{ID: SectionTitles, Header: "TÍTULOS", Title: "Opções de Título"},
	{ID: SectionHook, Header: "HOOK", Title: "Hook (Início do Vídeo)"},
	{ID: SectionIntroduction, Header: "INTRODUÇÃO", Title: "Introdução"},
	{ID: SectionMainContent, Header: "CONTEÚDO PRINCIPAL", Title: "Conteúdo Principal"},
	{ID: SectionConclusion, Header: "CONCLUSÃO", Title: "Conclusão e CTAs Finais"},
	{ID: SectionDescription, Header: "DESCRIÇÃO DO VÍDEO", Title: "Descrição do Vídeo (Para o YouTube)"},
	{ID: SectionKeywords, Header: "PALAVRAS-CHAVE", Title: "Palavras-chave"},
	{ID: SectionThumbnails, Header: "IDEIAS PARA THUMBNAILS", Title: "Ideias para Thumbnails"},
}

// ErrUnknownSection 未知分区
var ErrUnknownSection = errors.New("unknown script section")

// ParseSectionID 校验分区名称
func ParseSectionID(s string) (SectionID, error) {
	id := SectionID(strings.TrimSpace(s))
	for _, meta := range sections {
		if meta.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// SectionText 返回单个分区的复制文本
// 缩略图分区返回带 "Opção N" 标记的全部方案
func SectionText(s *entity.GeneratedScript, id SectionID) (string, error) {
	switch id {
	case SectionTitles:
		return strings.Join(s.Titles, "\n"), nil
	case SectionHook:
		return s.Hook, nil
	case SectionIntroduction:
		return s.Introduction, nil
	case SectionMainContent:
		return mainContentText(s.MainContent), nil
	case SectionConclusion:
		return s.Conclusion, nil
	case SectionDescription:
		return s.VideoDescription, nil
	case SectionKeywords:
		return s.Keywords, nil
	case SectionThumbnails:
		return thumbnailsText(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
}

// ThumbnailText 返回第 index 个缩略图方案（从 0 开始）的复制文本
func ThumbnailText(s *entity.GeneratedScript, index int) (string, error) {
	if index < 0 || index >= len(s.ThumbnailTexts) || index >= len(s.ThumbnailPrompts) {
		return "", fmt.Errorf("thumbnail index %d out of range [0, %d)", index, len(s.ThumbnailTexts))
	}
	return thumbnailText(s.ThumbnailTexts[index], s.ThumbnailPrompts[index]), nil
}

// Document 拼装完整脚本文档：8 个分区以分隔线连接
func Document(s *entity.GeneratedScript) string {
	blocks := make([]string, 0, len(sections))
	for _, meta := range sections {
		body, _ := SectionText(s, meta.ID)
		blocks = append(blocks, meta.Header+"\n"+body)
	}
	return strings.Join(blocks, documentSeparator)
}

// RenderedItem 分区内可单独复制的条目
type RenderedItem struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
	Copy  string `json:"copy"`
}

// RenderedSection 界面展示用分区
type RenderedSection struct {
	ID    SectionID      `json:"id"`
	Title string         `json:"title"`
	Copy  string         `json:"copy"`
	Items []RenderedItem `json:"items"`
}

// Render 按展示顺序生成全部分区
func Render(s *entity.GeneratedScript) []RenderedSection {
	out := make([]RenderedSection, 0, len(sections))
	for _, meta := range sections {
		sec := RenderedSection{ID: meta.ID, Title: meta.Title}
		switch meta.ID {
		case SectionTitles:
			sec.Copy = strings.Join(s.Titles, "\n")
			for _, t := range s.Titles {
				sec.Items = append(sec.Items, RenderedItem{Text: t, Copy: t})
			}
		case SectionMainContent:
			sec.Copy = mainContentText(s.MainContent)
			for _, p := range s.MainContent {
				sec.Items = append(sec.Items, RenderedItem{
					Label: fmt.Sprintf("Parte %d", p.Part),
					Text:  p.Content,
					Copy:  partText(p),
				})
			}
		case SectionThumbnails:
			for i := range s.ThumbnailTexts {
				c, _ := ThumbnailText(s, i)
				sec.Items = append(sec.Items, RenderedItem{
					Label: fmt.Sprintf("Opção %d", i+1),
					Text:  s.ThumbnailTexts[i],
					Copy:  c,
				})
			}
			sec.Copy = thumbnailsText(s)
		default:
			text, _ := SectionText(s, meta.ID)
			sec.Copy = text
			sec.Items = []RenderedItem{{Text: text, Copy: text}}
		}
		out = append(out, sec)
	}
	return out
}

func partText(p entity.MainContentPart) string {
	return fmt.Sprintf("Parte %d\n%s", p.Part, p.Content)
}

func mainContentText(parts []entity.MainContentPart) string {
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		blocks = append(blocks, partText(p))
	}
	return strings.Join(blocks, "\n\n")
}

func thumbnailText(text, prompt string) string {
	return fmt.Sprintf("Texto: \"%s\"\nPrompt de Imagem: %s", text, prompt)
}

func thumbnailsText(s *entity.GeneratedScript) string {
	n := min(len(s.ThumbnailTexts), len(s.ThumbnailPrompts))
	blocks := make([]string, 0, n)
	for i := 0; i < n; i++ {
		blocks = append(blocks, fmt.Sprintf("Opção %d\n%s", i+1, thumbnailText(s.ThumbnailTexts[i], s.ThumbnailPrompts[i])))
	}
	return strings.Join(blocks, "\n\n")
}
