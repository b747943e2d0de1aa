package dto

import (
	"time"

	"yt-script-ai-api/internal/domain/entity"
)

// SessionErrorDTO 会话失败信息
type SessionErrorDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionResponse 会话状态，Result 与 Error 至多一个非空
type SessionResponse struct {
	ID          string             `json:"id"`
	Status      string             `json:"status"`
	Request     *ScriptRequestBody `json:"request,omitempty"`
	Result      *ScriptPackageDTO  `json:"result,omitempty"`
	Error       *SessionErrorDTO   `json:"error,omitempty"`
	Attempts    int                `json:"attempts"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// ToSessionResponse 实体转响应
func ToSessionResponse(s *entity.Session) *SessionResponse {
	if s == nil {
		return nil
	}
	resp := &SessionResponse{
		ID:          s.ID,
		Status:      string(s.Status),
		Result:      ToScriptPackageDTO(s.Result),
		Attempts:    s.Attempts,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		SubmittedAt: s.SubmittedAt,
		CompletedAt: s.CompletedAt,
	}
	if s.Request != nil {
		resp.Request = &ScriptRequestBody{
			Title:              s.Request.Title,
			ChannelName:        s.Request.ChannelName,
			ChannelDescription: s.Request.ChannelDescription,
			Playlist:           s.Request.Playlist,
			VideoLength:        s.Request.VideoLength,
			Language:           s.Request.Language,
		}
	}
	if s.Error != nil {
		resp.Error = &SessionErrorDTO{Kind: s.Error.Kind, Message: s.Error.Message}
	}
	return resp
}

// CopyQuery 复制接口查询参数
type CopyQuery struct {
	Section string `form:"section"`
	Index   *int   `form:"index"`
}
