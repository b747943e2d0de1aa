// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	ErrorCode string `json:"error_code,omitempty"`
	Details   string `json:"details,omitempty"`
	// Field 校验失败的请求字段
	Field string `json:"field,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// traceID 未开启追踪时用请求 ID 关联日志
func traceID(c *gin.Context) string {
	if id := c.GetString("trace_id"); id != "" {
		return id
	}
	return c.GetString("request_id")
}

func write[T any](c *gin.Context, status int, message string, data T) {
	c.JSON(status, Response[T]{
		Code:    status,
		Message: message,
		Data:    data,
		TraceID: traceID(c),
	})
}

// Success 200
func Success[T any](c *gin.Context, data T) {
	write(c, http.StatusOK, "success", data)
}

// Created 201
func Created[T any](c *gin.Context, data T) {
	write(c, http.StatusCreated, "created", data)
}

// Accepted 202，生成在后台继续
func Accepted[T any](c *gin.Context, data T) {
	write(c, http.StatusAccepted, "accepted", data)
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, message string) {
	ErrorWithDetail(c, httpCode, message, nil)
}

// ErrorWithDetail 返回带详情的错误响应
func ErrorWithDetail(c *gin.Context, httpCode int, message string, detail *ErrorDetail) {
	c.JSON(httpCode, ErrorResponse{
		Code:    httpCode,
		Message: message,
		Error:   detail,
		TraceID: traceID(c),
	})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 返回 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
