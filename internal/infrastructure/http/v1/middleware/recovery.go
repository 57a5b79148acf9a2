// Package middleware holds the gin middleware chain of the API.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"tutorcenter/internal/core/apperror"
	appctx "tutorcenter/internal/core/context"
	"tutorcenter/pkg/logger"
)

// Recovery converts a panic into an internal AppError for ErrorHandler to
// render, so it is registered after ErrorHandler. The stack is logged only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			ctx := c.Request.Context()
			logger.Error(ctx, "panic recovered", "panic", r, "stack", string(debug.Stack()))

			_ = c.Error(apperror.NewInternal(fmt.Errorf("panic: %v", r)).
				WithDetail("request_id", appctx.GetRequestID(ctx)))
			c.Abort()
		}()
		c.Next()
	}
}
