package script

import (
	"errors"
	"fmt"
	"strings"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/workflow/port"
	apperrors "yt-script-ai-api/pkg/errors"
)

// GenerationError 一次生成失败，Kind 区分失败来源
type GenerationError struct {
	Kind    port.ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Cause 返回适合展示给用户的失败原因
func (e *GenerationError) Cause() string {
	if e.Err != nil {
		return strings.TrimSpace(e.Err.Error())
	}
	return strings.TrimSpace(e.Message)
}

func newGenerationError(kind port.ErrorKind, msg string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: msg, Err: err}
}

// AsGenerationError 从错误链中取出 GenerationError
func AsGenerationError(err error) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

var kindToCode = map[port.ErrorKind]apperrors.ErrorCode{
	port.KindNetwork:        apperrors.CodeLLMNetworkError,
	port.KindAuth:           apperrors.CodeLLMAuthFailed,
	port.KindProvider:       apperrors.CodeLLMProviderError,
	port.KindParse:          apperrors.CodeLLMParseFailed,
	port.KindSchemaMismatch: apperrors.CodeSchemaMismatch,
	port.KindUnknown:        apperrors.CodeGenerationFailed,
}

// ToAppError 转为接口层使用的 AppError，Message 为面向用户的葡语文案
func (e *GenerationError) ToAppError() *apperrors.AppError {
	code, ok := kindToCode[e.Kind]
	if !ok {
		code = apperrors.CodeGenerationFailed
	}
	return apperrors.Wrap(e, code, userMessage(e)).WithDetail(string(e.Kind))
}

// userMessage 失败原因为空时使用通用文案
func userMessage(e *GenerationError) string {
	return entity.GenerationFailureMessage(e.Cause())
}
