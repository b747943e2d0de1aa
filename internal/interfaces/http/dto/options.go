package dto

import "yt-script-ai-api/internal/domain/entity"

// OptionDTO 下拉选项
type OptionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormDefaults 表单默认值
type FormDefaults struct {
	VideoLength string `json:"video_length"`
	Language    string `json:"language"`
}

// OptionsResponse 表单选项表
type OptionsResponse struct {
	VideoLengths []OptionDTO  `json:"video_lengths"`
	Languages    []OptionDTO  `json:"languages"`
	Defaults     FormDefaults `json:"defaults"`
}

// NewOptionsResponse 按固定顺序输出选项
func NewOptionsResponse() OptionsResponse {
	return OptionsResponse{
		VideoLengths: toOptionDTOs(entity.VideoLengthOptions),
		Languages:    toOptionDTOs(entity.LanguageOptions),
		Defaults: FormDefaults{
			VideoLength: entity.DefaultVideoLength().Value,
			Language:    entity.DefaultLanguage,
		},
	}
}

func toOptionDTOs(opts []entity.Option) []OptionDTO {
	out := make([]OptionDTO, 0, len(opts))
	for _, o := range opts {
		out = append(out, OptionDTO{Value: o.Value, Label: o.Label})
	}
	return out
}
