package handler

import (
	"github.com/gin-gonic/gin"

	"yt-script-ai-api/internal/interfaces/http/dto"
)

// OptionsHandler 表单选项处理器
type OptionsHandler struct{}

// NewOptionsHandler 创建选项处理器
func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{}
}

// GetOptions 获取表单选项
// @Summary 获取表单选项
// @Description 返回视频时长、输出语言选项及默认值
// @Tags Options
// @Produce json
// @Success 200 {object} dto.Response[dto.OptionsResponse]
// @Router /v1/options [get]
func (h *OptionsHandler) GetOptions(c *gin.Context) {
	dto.Success(c, dto.NewOptionsResponse())
}
