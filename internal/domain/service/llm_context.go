// Package service 提供跨层共享的 LLM 调用上下文
package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyOperation llmCtxKey = "llm_operation"
	llmCtxKeyProvider  llmCtxKey = "llm_provider"
)

const unknownValue = "unknown"

// WithOperation 记录当前 LLM 调用所属的业务操作，用于指标与追踪
func WithOperation(ctx context.Context, operation string) context.Context {
	op := strings.TrimSpace(operation)
	if op == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyOperation, op)
}

// WithProvider 记录当前 LLM 提供商
func WithProvider(ctx context.Context, provider string) context.Context {
	p := strings.TrimSpace(provider)
	if p == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyProvider, p)
}

func WithOperationProvider(ctx context.Context, operation, provider string) context.Context {
	return WithProvider(WithOperation(ctx, operation), provider)
}

func OperationFromContext(ctx context.Context) string {
	return stringValue(ctx, llmCtxKeyOperation)
}

func ProviderFromContext(ctx context.Context) string {
	return stringValue(ctx, llmCtxKeyProvider)
}

func stringValue(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknownValue
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return unknownValue
	}
	return s
}
