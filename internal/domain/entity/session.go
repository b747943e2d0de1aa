package entity

import (
	"errors"
	"time"
)

// SessionStatus 会话状态
type SessionStatus string

const (
	SessionStatusIdle       SessionStatus = "idle"
	SessionStatusSubmitting SessionStatus = "submitting"
	SessionStatusSucceeded  SessionStatus = "success"
	SessionStatusFailed     SessionStatus = "failed"
)

// ErrInvalidTransition 非法状态迁移
var ErrInvalidTransition = errors.New("invalid session state transition")

// SessionError 会话中保存的失败信息
type SessionError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session 单个表单的生成会话
// 任一时刻 Result 与 Error 至多一个非空
type Session struct {
	ID          string           `json:"id"`
	Status      SessionStatus    `json:"status"`
	Request     *ScriptRequest   `json:"request,omitempty"`
	Result      *GeneratedScript `json:"result,omitempty"`
	Error       *SessionError    `json:"error,omitempty"`
	Attempts    int              `json:"attempts"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// NewSession 创建空闲会话
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Status:    SessionStatusIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BeginSubmit 进入提交中状态并清空上一次的结果与错误
func (s *Session) BeginSubmit(req ScriptRequest, now time.Time) error {
	if s.Status == SessionStatusSubmitting {
		return ErrInvalidTransition
	}
	r := req
	s.Status = SessionStatusSubmitting
	s.Request = &r
	s.Result = nil
	s.Error = nil
	s.Attempts++
	s.SubmittedAt = &now
	s.CompletedAt = nil
	s.UpdatedAt = now
	return nil
}

// Succeed 记录生成结果
func (s *Session) Succeed(result *GeneratedScript, now time.Time) error {
	if s.Status != SessionStatusSubmitting || result == nil {
		return ErrInvalidTransition
	}
	s.Status = SessionStatusSucceeded
	s.Result = result
	s.Error = nil
	s.CompletedAt = &now
	s.UpdatedAt = now
	return nil
}

// Fail 记录生成失败
func (s *Session) Fail(kind, message string, now time.Time) error {
	if s.Status != SessionStatusSubmitting {
		return ErrInvalidTransition
	}
	s.Status = SessionStatusFailed
	s.Result = nil
	s.Error = &SessionError{Kind: kind, Message: message}
	s.CompletedAt = &now
	s.UpdatedAt = now
	return nil
}

// IsSubmitting 是否有进行中的提交
func (s *Session) IsSubmitting() bool {
	return s.Status == SessionStatusSubmitting
}
