package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appctx "tutorcenter/internal/core/context"
)

// HeaderActor names the staff member behind a request. It is copied into
// updated_by columns and audit entries; it is not authentication.
const HeaderActor = "X-Actor"

const maxActorLen = 100

// Actor puts the X-Actor header into the request context.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(HeaderActor))
		if len(actor) > maxActorLen {
			actor = actor[:maxActorLen]
		}
		if actor != "" {
			c.Request = c.Request.WithContext(appctx.WithActor(c.Request.Context(), actor))
		}
		c.Next()
	}
}
