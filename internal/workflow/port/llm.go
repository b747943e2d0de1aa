// Package port 定义工作流层对 LLM 的最小依赖
package port

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// ChatModelFactory 按提供商名称返回 Eino ChatModel
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// StructuredRequest 一次结构化 JSON 生成请求
type StructuredRequest struct {
	// Prompt 完整提示词文本，供只接收单条文本的提供商使用
	Prompt string
	// Messages 同一提示词的消息形式
	Messages []*schema.Message
	// Schema 响应结构声明（Gemini 原生格式）
	Schema *genai.Schema
	// JSONSchema 与 Schema 等价的 JSON Schema，用于 OpenAI 兼容接口
	JSONSchema  map[string]any
	SchemaName  string
	Model       string
	Temperature float32
	MaxTokens   int
}

// StructuredResponse 提供商原始响应文本与用量
type StructuredResponse struct {
	Text             string
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// StructuredGenerator 结构化生成端口
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, req *StructuredRequest) (*StructuredResponse, error)
}

// GeneratorResolver 按名称解析生成器，空名称返回默认提供商
type GeneratorResolver interface {
	Resolve(ctx context.Context, provider string) (StructuredGenerator, string, error)
}

// ErrorKind 生成失败类别
type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"
	KindAuth           ErrorKind = "auth"
	KindProvider       ErrorKind = "provider"
	KindParse          ErrorKind = "parse"
	KindSchemaMismatch ErrorKind = "schema_mismatch"
	KindUnknown        ErrorKind = "unknown"
)

// ProviderError 提供商调用失败，由适配器按 SDK 错误归类
type ProviderError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s provider error (%s, status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider error (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindOf 返回错误链中 ProviderError 的类别，没有时返回 KindUnknown
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
