package middleware

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/core/apperror"
	appctx "tutorcenter/internal/core/context"
	"tutorcenter/internal/infrastructure/http/v1/dto"
	"tutorcenter/pkg/logger"
)

// ErrorHandler renders the last error registered with c.Error as
// {code, message, details}. Anything that is not an AppError becomes a 500
// whose cause only reaches the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ctx := c.Request.Context()

		err := c.Errors.Last().Err
		appErr, ok := apperror.AsAppError(err)
		if !ok {
			appErr = apperror.NewInternal(err).WithDetail("request_id", appctx.GetRequestID(ctx))
		}
		if appErr.Err != nil {
			logger.Error(ctx, "request failed", "code", appErr.Code, "cause", appErr.Err)
		}

		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}
}
