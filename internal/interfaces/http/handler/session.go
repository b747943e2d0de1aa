package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yt-script-ai-api/internal/application/script"
	"yt-script-ai-api/internal/interfaces/http/dto"
	"yt-script-ai-api/pkg/errors"
)

// SessionHandler 会话式生成处理器
type SessionHandler struct {
	sessions *script.SessionService
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(sessions *script.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSession 创建会话
// @Summary 创建会话
// @Tags Sessions
// @Produce json
// @Success 201 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to create session")
		return
	}
	dto.Created(c, dto.ToSessionResponse(session))
}

// GetSession 获取会话状态
// @Summary 获取会话状态
// @Tags Sessions
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		writeError(c, err, "failed to get session")
		return
	}
	dto.Success(c, dto.ToSessionResponse(session))
}

// Submit 提交表单并在后台生成
// @Summary 提交生成
// @Description 校验通过后会话进入 submitting，生成在后台执行，客户端轮询会话状态
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sid path string true "会话 ID"
// @Param body body dto.ScriptRequestBody true "表单"
// @Success 202 {object} dto.Response[dto.SessionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
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

	session, err := h.sessions.Submit(c.Request.Context(), c.Param("sid"), req)
	if err != nil {
		writeError(c, err, "failed to submit session")
		return
	}
	dto.Accepted(c, dto.ToSessionResponse(session))
}

// Render 返回成功会话的分区渲染
// @Summary 渲染脚本
// @Tags Sessions
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.AssembledScriptResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/sessions/{sid}/render [get]
func (h *SessionHandler) Render(c *gin.Context) {
	result, err := h.sessions.Result(c.Request.Context(), c.Param("sid"))
	if err != nil {
		writeError(c, err, "failed to render session")
		return
	}
	dto.Success(c, dto.NewAssembledScriptResponse(result))
}

// Copy 返回可直接粘贴的纯文本
// section 为空时返回完整文档；thumbnails 带 index 时只返回对应方案
// @Summary 复制文本
// @Tags Sessions
// @Produce plain
// @Param sid path string true "会话 ID"
// @Param section query string false "分区"
// @Param index query int false "缩略图方案序号，从 0 开始"
// @Success 200 {string} string
// @Router /v1/sessions/{sid}/copy [get]
func (h *SessionHandler) Copy(c *gin.Context) {
	var q dto.CopyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "invalid query: "+err.Error())
		return
	}

	result, err := h.sessions.Result(c.Request.Context(), c.Param("sid"))
	if err != nil {
		writeError(c, err, "failed to copy session")
		return
	}

	section := strings.TrimSpace(q.Section)
	if section == "" {
		c.String(http.StatusOK, script.Document(result))
		return
	}

	id, err := script.ParseSectionID(section)
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	var text string
	if id == script.SectionThumbnails && q.Index != nil {
		text, err = script.ThumbnailText(result, *q.Index)
	} else {
		text, err = script.SectionText(result, id)
	}
	if err != nil {
		if stderrors.Is(err, script.ErrUnknownSection) {
			dto.BadRequest(c, err.Error())
			return
		}
		writeAppError(c, errors.ErrInvalidParam.WithDetail(err.Error()))
		return
	}
	c.String(http.StatusOK, text)
}
