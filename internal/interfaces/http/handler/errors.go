package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yt-script-ai-api/internal/application/script"
	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/interfaces/http/dto"
	"yt-script-ai-api/pkg/errors"
	"yt-script-ai-api/pkg/logger"
)

// writeError 将业务错误映射为统一错误响应
func writeError(c *gin.Context, err error, logMsg string) {
	ctx := c.Request.Context()

	var verr *entity.ValidationError
	if stderrors.As(err, &verr) {
		dto.ErrorWithDetail(c, http.StatusBadRequest, verr.Message, &dto.ErrorDetail{
			ErrorCode: string(errors.CodeValidationFailed),
			Field:     verr.Field,
		})
		return
	}

	if ge, ok := script.AsGenerationError(err); ok {
		appErr := ge.ToAppError()
		logger.Warn(ctx, logMsg, "kind", string(ge.Kind), "error", err.Error())
		writeAppError(c, appErr)
		return
	}

	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(ctx, logMsg, err)
		}
		writeAppError(c, appErr)
		return
	}

	logger.Error(ctx, logMsg, err)
	dto.ErrorWithDetail(c, http.StatusInternalServerError, entity.MsgUnknownError, &dto.ErrorDetail{
		ErrorCode: string(errors.CodeInternalError),
	})
}

func writeAppError(c *gin.Context, appErr *errors.AppError) {
	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}
