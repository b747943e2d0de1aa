package entity

import (
	"strings"
)

// 面向用户的提示文案
const (
	MsgTitleRequired    = "Por favor, insira um tema ou título para o vídeo."
	MsgUnknownError     = "Ocorreu um erro desconhecido."
	msgGenerationFailed = "Falha ao gerar o roteiro: "
)

// GenerationFailureMessage 生成失败时展示给用户的文案
func GenerationFailureMessage(cause string) string {
	if strings.TrimSpace(cause) == "" {
		return MsgUnknownError
	}
	return msgGenerationFailed + cause
}

// ValidationError 请求校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ScriptRequest 一次脚本生成请求
type ScriptRequest struct {
	Title              string `json:"title"`
	ChannelName        string `json:"channel_name,omitempty"`
	ChannelDescription string `json:"channel_description,omitempty"`
	Playlist           string `json:"playlist,omitempty"`
	// VideoLength 时长展示标签，例如 "~4.500 palavras (15-20 min)"
	VideoLength string `json:"video_length"`
	// Language 语言代码，例如 "Português_BR"
	Language string `json:"language"`
}

// NewScriptRequest 规范化表单输入：时长可传 key 或标签，空值取默认
func NewScriptRequest(title, channelName, channelDescription, playlist, videoLength, language string) (ScriptRequest, error) {
	req := ScriptRequest{
		Title:              title,
		ChannelName:        channelName,
		ChannelDescription: channelDescription,
		Playlist:           playlist,
		VideoLength:        videoLength,
		Language:           language,
	}

	if strings.TrimSpace(req.VideoLength) == "" {
		req.VideoLength = DefaultVideoLength().Label
	} else if opt, ok := FindVideoLength(req.VideoLength); ok {
		req.VideoLength = opt.Label
	} else {
		return req, &ValidationError{Field: "video_length", Message: "unknown video length " + req.VideoLength}
	}

	if strings.TrimSpace(req.Language) == "" {
		req.Language = DefaultLanguage
	}

	return req, req.Validate()
}

// Validate 校验请求，标题为空时返回面向用户的提示
func (r ScriptRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Message: MsgTitleRequired}
	}
	if _, ok := FindLanguage(r.Language); !ok {
		return &ValidationError{Field: "language", Message: "unknown language " + r.Language}
	}
	return nil
}

// MainContentPart 正文分段
type MainContentPart struct {
	Part    int    `json:"part"`
	Content string `json:"content"`
}

// GeneratedScript 模型返回的结构化脚本包，解码后不可修改
type GeneratedScript struct {
	Titles           []string          `json:"titles"`
	Hook             string            `json:"hook"`
	Introduction     string            `json:"introduction"`
	MainContent      []MainContentPart `json:"mainContent"`
	Conclusion       string            `json:"conclusion"`
	VideoDescription string            `json:"videoDescription"`
	Keywords         string            `json:"keywords"`
	ThumbnailTexts   []string          `json:"thumbnailTexts"`
	ThumbnailPrompts []string          `json:"thumbnailPrompts"`
}

// ThumbnailCount 返回缩略图方案数量
func (s *GeneratedScript) ThumbnailCount() int {
	return len(s.ThumbnailTexts)
}

// WordCount 统计口播部分（hook、引言、正文、结尾）的词数
func (s *GeneratedScript) WordCount() int {
	n := len(strings.Fields(s.Hook)) + len(strings.Fields(s.Introduction)) + len(strings.Fields(s.Conclusion))
	for _, p := range s.MainContent {
		n += len(strings.Fields(p.Content))
	}
	return n
}
