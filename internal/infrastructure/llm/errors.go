package llm

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	wfnode "yt-script-ai-api/internal/workflow/node"
	"yt-script-ai-api/internal/workflow/port"
)

// classifyStatus 按 HTTP 状态码归类提供商错误
func classifyStatus(code int) port.ErrorKind {
	switch {
	case code == 401 || code == 403:
		return port.KindAuth
	case code == 408 || code == 429:
		return port.KindNetwork
	case code >= 400:
		return port.KindProvider
	default:
		return port.KindUnknown
	}
}

// classifyTransport 识别网络层错误，无法识别时返回 KindUnknown
func classifyTransport(err error) port.ErrorKind {
	if err == nil {
		return port.KindUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return port.KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return port.KindNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return port.KindNetwork
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "i/o timeout"),
		strings.Contains(msg, "eof"):
		return port.KindNetwork
	}
	if wfnode.IsAuthErrorMessage(err) {
		return port.KindAuth
	}
	return port.KindUnknown
}

func providerError(provider string, kind port.ErrorKind, status int, err error) *port.ProviderError {
	return &port.ProviderError{Kind: kind, Provider: provider, StatusCode: status, Err: err}
}

// errMissingAPIKey 提供商未配置密钥
var errMissingAPIKey = errors.New("api key is not configured")
