// Package middleware 提供 HTTP 中间件
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yt-script-ai-api/pkg/logger"
)

const (
	// RequestIDHeader 请求 ID 头
	RequestIDHeader = "X-Request-ID"

	// ContextKeyRequestID gin.Context 中的请求 ID
	ContextKeyRequestID = "request_id"
	// ContextKeyTraceID gin.Context 中的 trace ID
	ContextKeyTraceID = "trace_id"

	maxRequestIDLen = 64
)

// RequestID 请求 ID 注入中间件
// 沿用客户端传入的 ID，格式不合法时重新生成
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, requestID)
		ctx := logger.WithContext(c.Request.Context(), logger.RequestIDKey, requestID)

		// 会话路由把会话 ID 带进日志
		if sid := c.Param("sid"); sid != "" {
			ctx = logger.WithContext(ctx, logger.SessionIDKey, sid)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
