package script

import (
	"encoding/json"
	"fmt"
	"strings"

	"yt-script-ai-api/internal/domain/entity"
	wfnode "yt-script-ai-api/internal/workflow/node"
	"yt-script-ai-api/internal/workflow/port"
)

// expectedOptionCount 标题与缩略图方案的期望数量
const expectedOptionCount = 3

// ScriptValidationError 模型输出与响应结构不符
type ScriptValidationError struct {
	Issues []string
}

func (e ScriptValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "script package validation failed"
	}
	return "script package validation failed: " + strings.Join(e.Issues, "; ")
}

// DecodeResult 解码结果，Warnings 为不影响使用的偏差
type DecodeResult struct {
	Script   *entity.GeneratedScript
	JSONText string
	Warnings []string
}

// DecodeScript 解析模型返回文本并校验字段存在性、类型与对齐关系
// 非法 JSON 返回 Parse 类错误，结构不符返回 SchemaMismatch 类错误
func DecodeScript(rawText string) (*DecodeResult, error) {
	jsonText := wfnode.ExtractJSONObject(rawText)
	if jsonText == "" {
		return nil, newGenerationError(port.KindParse, "empty model response", nil)
	}
	if !json.Valid([]byte(jsonText)) {
		var v any
		err := json.Unmarshal([]byte(jsonText), &v)
		return nil, newGenerationError(port.KindParse, "model response is not valid JSON", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
		return nil, newGenerationError(port.KindSchemaMismatch, "model response is not a JSON object", err)
	}

	var (
		issues []string
		out    entity.GeneratedScript
	)
	decodeField := func(name string, dst any, typeName string) {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			issues = append(issues, name+" is required")
			return
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			issues = append(issues, fmt.Sprintf("%s must be %s", name, typeName))
		}
	}

	decodeField(FieldTitles, &out.Titles, "an array of strings")
	decodeField(FieldHook, &out.Hook, "a string")
	decodeField(FieldIntroduction, &out.Introduction, "a string")
	decodeField(FieldMainContent, &out.MainContent, "an array of {part, content} objects")
	decodeField(FieldConclusion, &out.Conclusion, "a string")
	decodeField(FieldVideoDescription, &out.VideoDescription, "a string")
	decodeField(FieldKeywords, &out.Keywords, "a string")
	decodeField(FieldThumbnailTexts, &out.ThumbnailTexts, "an array of strings")
	decodeField(FieldThumbnailPrompts, &out.ThumbnailPrompts, "an array of strings")

	if len(issues) == 0 {
		issues = append(issues, validateMainContentItems(fields[FieldMainContent])...)
		issues = append(issues, validateAlignment(&out)...)
	}
	if len(issues) > 0 {
		return nil, newGenerationError(port.KindSchemaMismatch, "model response does not match schema", ScriptValidationError{Issues: issues})
	}

	var warnings []string
	if len(out.Titles) != expectedOptionCount {
		warnings = append(warnings, fmt.Sprintf("expected %d titles, got %d", expectedOptionCount, len(out.Titles)))
	}
	if len(out.ThumbnailTexts) != expectedOptionCount {
		warnings = append(warnings, fmt.Sprintf("expected %d thumbnail options, got %d", expectedOptionCount, len(out.ThumbnailTexts)))
	}

	return &DecodeResult{Script: &out, JSONText: jsonText, Warnings: warnings}, nil
}

// validateMainContentItems 检查每个分段都带有 part 与 content
func validateMainContentItems(raw json.RawMessage) []string {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{FieldMainContent + " items must be objects"}
	}
	var issues []string
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", FieldMainContent, i)
		if v, ok := item["part"]; !ok || string(v) == "null" {
			issues = append(issues, path+".part is required")
		}
		if v, ok := item["content"]; !ok || string(v) == "null" {
			issues = append(issues, path+".content is required")
		}
	}
	return issues
}

// ValidateScript 校验不经模型解码、由调用方直接提供的脚本包
// 规则与解码时的对齐校验一致
func ValidateScript(s *entity.GeneratedScript) error {
	if s == nil {
		return ScriptValidationError{Issues: []string{"script package is required"}}
	}
	if issues := validateAlignment(s); len(issues) > 0 {
		return ScriptValidationError{Issues: issues}
	}
	return nil
}

// validateAlignment 检查分段编号连续、缩略图文本与提示词一一对应
func validateAlignment(s *entity.GeneratedScript) []string {
	var issues []string
	if len(s.MainContent) == 0 {
		issues = append(issues, FieldMainContent+" must not be empty")
	}
	for i, p := range s.MainContent {
		if p.Part != i+1 {
			issues = append(issues, fmt.Sprintf("%s[%d].part must be %d, got %d", FieldMainContent, i, i+1, p.Part))
		}
	}
	if len(s.ThumbnailTexts) != len(s.ThumbnailPrompts) {
		issues = append(issues, fmt.Sprintf("%s and %s must have equal length (%d != %d)",
			FieldThumbnailTexts, FieldThumbnailPrompts, len(s.ThumbnailTexts), len(s.ThumbnailPrompts)))
	}
	return issues
}
