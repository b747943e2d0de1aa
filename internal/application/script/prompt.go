// Package script 实现 YouTube 脚本包的生成、解码与排版
package script

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"

	"yt-script-ai-api/internal/domain/entity"
	workflowprompt "yt-script-ai-api/internal/workflow/prompt"
)

const (
	placeholderNotProvidedM = "Não fornecido"
	placeholderNotProvidedF = "Não fornecida"
)

var wordCountPattern = regexp.MustCompile(`\d[\d.]*`)

// ScriptPrompt 提示词构建结果
type ScriptPrompt struct {
	TargetWords      int
	WordDistribution string
	PartGuidance     string
	// BucketMatched 目标字数是否命中预设档位
	BucketMatched bool
	Text          string
	Messages      []*schema.Message
}

// ExtractTargetWords 从时长标签中解析目标字数
// 取第一段数字（可含千分位 "."），去掉所有 "." 后解析；失败时返回 4500
func ExtractTargetWords(label string) int {
	m := wordCountPattern.FindString(label)
	if m == "" {
		return entity.DefaultTargetWords
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ".", ""))
	if err != nil || n <= 0 {
		return entity.DefaultTargetWords
	}
	return n
}

// PromptBuilder 将请求渲染为提示词
type PromptBuilder struct {
	registry *workflowprompt.Registry
}

// NewPromptBuilder 创建提示词构建器
func NewPromptBuilder(registry *workflowprompt.Registry) *PromptBuilder {
	if registry == nil {
		registry = workflowprompt.NewRegistry()
	}
	return &PromptBuilder{registry: registry}
}

// Build 构建提示词，相同请求总是得到相同文本
func (b *PromptBuilder) Build(ctx context.Context, req entity.ScriptRequest) (*ScriptPrompt, error) {
	targetWords := ExtractTargetWords(req.VideoLength)
	bucket, matched := entity.BucketFor(targetWords)

	tpl, err := b.registry.ChatTemplate(workflowprompt.PromptScriptPackageV1)
	if err != nil {
		return nil, err
	}

	msgs, err := tpl.Format(ctx, map[string]any{
		"target_words":        targetWords,
		"word_distribution":   bucket.WordDistribution,
		"part_guidance":       bucket.PartGuidance,
		"title":               req.Title,
		"channel_name":        orPlaceholder(req.ChannelName, placeholderNotProvidedM),
		"channel_description": orPlaceholder(req.ChannelDescription, placeholderNotProvidedF),
		"playlist":            orPlaceholder(req.Playlist, placeholderNotProvidedF),
		"video_length":        req.VideoLength,
		"language":            req.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("format script prompt: %w", err)
	}

	var sb strings.Builder
	for i, m := range msgs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.Content)
	}

	return &ScriptPrompt{
		TargetWords:      targetWords,
		WordDistribution: bucket.WordDistribution,
		PartGuidance:     bucket.PartGuidance,
		BucketMatched:    matched,
		Text:             sb.String(),
		Messages:         msgs,
	}, nil
}

// orPlaceholder 空白的可选字段替换为占位文本，非空值原样保留
func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}
