// Package node 提供 LLM 输出处理的通用节点函数
package node

import (
	"strings"
)

// StripCodeFence 去掉模型可能包裹在 JSON 外层的 markdown 代码块
func StripCodeFence(s string) string {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	// 去掉语言标记，例如 ```json
	if nl := strings.IndexByte(raw, '\n'); nl >= 0 && !strings.ContainsAny(raw[:nl], "{[") {
		raw = raw[nl+1:]
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

// ExtractJSONObject 截取第一个 "{" 到最后一个 "}" 之间的内容
// 模型在 prompt-only 模式下可能在 JSON 前后夹杂说明文字
func ExtractJSONObject(s string) string {
	raw := StripCodeFence(s)
	if raw == "" || strings.HasPrefix(raw, "{") {
		return raw
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
