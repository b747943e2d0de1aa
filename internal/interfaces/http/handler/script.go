package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yt-script-ai-api/internal/application/script"
	"yt-script-ai-api/internal/interfaces/http/dto"
	"yt-script-ai-api/pkg/errors"
	"yt-script-ai-api/pkg/logger"
)

// ScriptHandler 无状态的脚本生成与组装
type ScriptHandler struct {
	generator script.ScriptGenerator
}

// NewScriptHandler 创建脚本处理器
func NewScriptHandler(generator script.ScriptGenerator) *ScriptHandler {
	return &ScriptHandler{generator: generator}
}

// Generate 同步生成脚本包
// @Summary 生成脚本包
// @Description 校验表单后调用模型生成完整脚本包，请求在生成完成前保持打开
// @Tags Scripts
// @Accept json
// @Produce json
// @Param body body dto.ScriptRequestBody true "表单"
// @Success 200 {object} dto.Response[dto.GenerateScriptResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/scripts/generate [post]
func (h *ScriptHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var body dto.ScriptRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	req, err := body.ToEntity()
	if err != nil {
		writeError(c, err, "invalid script request")
		return
	}

	out, err := h.generator.Generate(ctx, req)
	if err != nil {
		writeError(c, err, "script generation failed")
		return
	}

	logger.Info(ctx, "script generation served", "provider", out.Provider, "target_words", out.Prompt.TargetWords)
	dto.Success(c, dto.ToGenerateScriptResponse(out))
}

// Assemble 组装客户端持有的脚本包
// @Summary 组装脚本文档
// @Description 将脚本包拼装为完整文档与分区渲染
// @Tags Scripts
// @Accept json
// @Produce json
// @Param body body dto.AssembleScriptRequest true "脚本包"
// @Success 200 {object} dto.Response[dto.AssembledScriptResponse]
// @Failure 400 {object} dto.ErrorResponse "编号不连续或缩略图文本与提示词数量不一致"
// @Router /v1/scripts/assemble [post]
func (h *ScriptHandler) Assemble(c *gin.Context) {
	var req dto.AssembleScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	s := req.Script.ToEntity()
	if err := script.ValidateScript(s); err != nil {
		dto.ErrorWithDetail(c, http.StatusBadRequest, "invalid script package", &dto.ErrorDetail{
			ErrorCode: string(errors.CodeSchemaMismatch),
			Details:   err.Error(),
		})
		return
	}
	dto.Success(c, dto.NewAssembledScriptResponse(s))
}
