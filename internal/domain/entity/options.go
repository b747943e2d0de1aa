// Package entity 定义领域实体
package entity

// Option 表单下拉选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// VideoLengthOptions 视频时长选项，key 为目标总字数，顺序即展示顺序
var VideoLengthOptions = []Option{
	{Value: "3000", Label: "~3.000 palavras (10-15 min)"},
	{Value: "4500", Label: "~4.500 palavras (15-20 min)"},
	{Value: "6000", Label: "~6.000 palavras (20-30 min)"},
	{Value: "8000", Label: "~8.000 palavras (30-45 min)"},
}

// LanguageOptions 输出语言选项
var LanguageOptions = []Option{
	{Value: "Alemão_GER", Label: "Alemão (GER)"},
	{Value: "Coreano", Label: "Coreano"},
	{Value: "Espanhol_MX", Label: "Espanhol (MX)"},
	{Value: "Francês_FR", Label: "Francês (FR)"},
	{Value: "Inglês_USA", Label: "Inglês (USA)"},
	{Value: "Italiano", Label: "Italiano"},
	{Value: "Português_BR", Label: "Português (BR)"},
	{Value: "Japonês", Label: "Japonês"},
	{Value: "Russo", Label: "Russo"},
}

const (
	// DefaultLanguage 表单默认语言
	DefaultLanguage = "Português_BR"
	// DefaultTargetWords 无法解析时长标签时使用的目标字数
	DefaultTargetWords = 4500
)

// DefaultVideoLength 表单默认时长（第一个选项）
func DefaultVideoLength() Option {
	return VideoLengthOptions[0]
}

// DurationBucket 目标字数对应的篇幅分配
type DurationBucket struct {
	TargetWords      int    `json:"target_words"`
	WordDistribution string `json:"word_distribution"`
	PartGuidance     string `json:"part_guidance"`
}

var durationBuckets = map[int]DurationBucket{
	3000: {
		TargetWords:      3000,
		WordDistribution: "Hook: ~75 palavras. Introdução: ~150 palavras. Conteúdo Principal: ~2500 palavras. Conclusão: ~150 palavras.",
		PartGuidance:     "4-5 partes",
	},
	4500: {
		TargetWords:      4500,
		WordDistribution: "Hook: ~100 palavras. Introdução: ~200 palavras. Conteúdo Principal: ~4000 palavras. Conclusão: ~200 palavras.",
		PartGuidance:     "5-6 partes",
	},
	6000: {
		TargetWords:      6000,
		WordDistribution: "Hook: ~125 palavras. Introdução: ~250 palavras. Conteúdo Principal: ~5400 palavras. Conclusão: ~250 palavras.",
		PartGuidance:     "6-7 partes",
	},
	8000: {
		TargetWords:      8000,
		WordDistribution: "Hook: ~150 palavras. Introdução: ~250 palavras. Conteúdo Principal: ~7350 palavras. Conclusão: ~250 palavras.",
		PartGuidance:     "7-8 partes",
	},
}

// BucketFor 精确匹配目标字数，未命中时回退到 4500 档位
func BucketFor(targetWords int) (DurationBucket, bool) {
	if b, ok := durationBuckets[targetWords]; ok {
		return b, true
	}
	return durationBuckets[DefaultTargetWords], false
}

// FindVideoLength 按 key 或展示标签查找时长选项
func FindVideoLength(valueOrLabel string) (Option, bool) {
	for _, opt := range VideoLengthOptions {
		if opt.Value == valueOrLabel || opt.Label == valueOrLabel {
			return opt, true
		}
	}
	return Option{}, false
}

// FindLanguage 按语言代码查找语言选项
func FindLanguage(value string) (Option, bool) {
	for _, opt := range LanguageOptions {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
