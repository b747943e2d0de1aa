package dto

import (
	"yt-script-ai-api/internal/application/script"
	"yt-script-ai-api/internal/domain/entity"
)

// ScriptRequestBody 生成/提交接口的表单字段
type ScriptRequestBody struct {
	Title              string `json:"title"`
	ChannelName        string `json:"channel_name,omitempty"`
	ChannelDescription string `json:"channel_description,omitempty"`
	Playlist           string `json:"playlist,omitempty"`
	// VideoLength 时长键（如 "4500"）或完整标签，留空使用第一个选项
	VideoLength string `json:"video_length,omitempty"`
	Language    string `json:"language,omitempty"`
}

// ToEntity 规范化并校验请求
func (b *ScriptRequestBody) ToEntity() (entity.ScriptRequest, error) {
	return entity.NewScriptRequest(b.Title, b.ChannelName, b.ChannelDescription, b.Playlist, b.VideoLength, b.Language)
}

// MainContentPartDTO 正文分段
type MainContentPartDTO struct {
	Part    int    `json:"part"`
	Content string `json:"content"`
}

// ScriptPackageDTO 生成的脚本包
type ScriptPackageDTO struct {
	Titles           []string             `json:"titles"`
	Hook             string               `json:"hook"`
	Introduction     string               `json:"introduction"`
	MainContent      []MainContentPartDTO `json:"main_content"`
	Conclusion       string               `json:"conclusion"`
	VideoDescription string               `json:"video_description"`
	Keywords         string               `json:"keywords"`
	ThumbnailTexts   []string             `json:"thumbnail_texts"`
	ThumbnailPrompts []string             `json:"thumbnail_prompts"`
}

// ToScriptPackageDTO 实体转 DTO
func ToScriptPackageDTO(s *entity.GeneratedScript) *ScriptPackageDTO {
	if s == nil {
		return nil
	}
	parts := make([]MainContentPartDTO, 0, len(s.MainContent))
	for _, p := range s.MainContent {
		parts = append(parts, MainContentPartDTO{Part: p.Part, Content: p.Content})
	}
	return &ScriptPackageDTO{
		Titles:           s.Titles,
		Hook:             s.Hook,
		Introduction:     s.Introduction,
		MainContent:      parts,
		Conclusion:       s.Conclusion,
		VideoDescription: s.VideoDescription,
		Keywords:         s.Keywords,
		ThumbnailTexts:   s.ThumbnailTexts,
		ThumbnailPrompts: s.ThumbnailPrompts,
	}
}

// ToEntity DTO 转实体
func (d *ScriptPackageDTO) ToEntity() *entity.GeneratedScript {
	parts := make([]entity.MainContentPart, 0, len(d.MainContent))
	for _, p := range d.MainContent {
		parts = append(parts, entity.MainContentPart{Part: p.Part, Content: p.Content})
	}
	return &entity.GeneratedScript{
		Titles:           d.Titles,
		Hook:             d.Hook,
		Introduction:     d.Introduction,
		MainContent:      parts,
		Conclusion:       d.Conclusion,
		VideoDescription: d.VideoDescription,
		Keywords:         d.Keywords,
		ThumbnailTexts:   d.ThumbnailTexts,
		ThumbnailPrompts: d.ThumbnailPrompts,
	}
}

// AssembledScriptResponse 脚本的完整文档与分区渲染
type AssembledScriptResponse struct {
	Document string                   `json:"document"`
	Sections []script.RenderedSection `json:"sections"`
}

// NewAssembledScriptResponse 组装文档与分区
func NewAssembledScriptResponse(s *entity.GeneratedScript) AssembledScriptResponse {
	return AssembledScriptResponse{
		Document: script.Document(s),
		Sections: script.Render(s),
	}
}

// GenerateScriptResponse 同步生成结果
type GenerateScriptResponse struct {
	Script      *ScriptPackageDTO `json:"script"`
	AssembledScriptResponse
	TargetWords int      `json:"target_words"`
	Provider    string   `json:"provider"`
	Model       string   `json:"model,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	DurationMs  int64    `json:"duration_ms"`
}

// ToGenerateScriptResponse 转换生成结果
func ToGenerateScriptResponse(out *script.GenerateOutput) GenerateScriptResponse {
	resp := GenerateScriptResponse{
		Script:                  ToScriptPackageDTO(out.Script),
		AssembledScriptResponse: NewAssembledScriptResponse(out.Script),
		Provider:                out.Provider,
		Model:                   out.Model,
		Warnings:                out.Warnings,
		DurationMs:              out.Duration.Milliseconds(),
	}
	if out.Prompt != nil {
		resp.TargetWords = out.Prompt.TargetWords
	}
	return resp
}

// AssembleScriptRequest 组装接口请求
type AssembleScriptRequest struct {
	Script *ScriptPackageDTO `json:"script" binding:"required"`
}
