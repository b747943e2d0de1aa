package node

import "strings"

// IsResponseFormatUnsupportedError 判断提供商是否拒绝了 response_format/json_schema 参数
func IsResponseFormatUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "response_format"):
		return true
	case strings.Contains(msg, "json_schema"):
		return true
	case strings.Contains(msg, "unknown parameter") && strings.Contains(msg, "response"):
		return true
	case strings.Contains(msg, "response_schema"):
		return true
	default:
		return false
	}
}

// IsAuthErrorMessage 根据错误文本判断是否为凭证问题
func IsAuthErrorMessage(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "status code: 401"), strings.Contains(msg, "status code: 403"):
		return true
	case strings.Contains(msg, "invalid api key"), strings.Contains(msg, "incorrect api key"):
		return true
	case strings.Contains(msg, "api key not valid"), strings.Contains(msg, "unauthorized"):
		return true
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "permission_denied"):
		return true
	default:
		return false
	}
}
