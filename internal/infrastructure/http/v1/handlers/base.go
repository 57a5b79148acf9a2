// Package handlers holds the gin handlers of the v1 API. Handlers register
// errors with c.Error and leave rendering to middleware.ErrorHandler.
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// BaseHandler is embedded by every handler for binding and responses.
type BaseHandler struct{}

func NewBaseHandler() *BaseHandler { return &BaseHandler{} }

// Error registers err and aborts the chain.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func (h *BaseHandler) invalid(c *gin.Context, message, key string, value any) {
	h.Error(c, apperror.NewValidation(message).WithDetail(key, value))
}

// BindJSON decodes the body into obj. It reports false after registering a
// validation error.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.invalid(c, "invalid request body", "error", err.Error())
		return false
	}
	return true
}

// ParamID parses a path parameter as an id.
func (h *BaseHandler) ParamID(c *gin.Context, name string) (id.ID, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		h.invalid(c, "invalid id format", "field", name)
		return id.Nil, false
	}
	return v, true
}

// ParseIntQuery falls back to def when the value is absent or malformed.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// ParseBoolQuery is nil when the parameter is absent.
func (h *BaseHandler) ParseBoolQuery(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	b := v == "true" || v == "1"
	return &b
}

// ParseDate parses YYYY-MM-DD. Blank input is the zero time.
func ParseDate(s string) (time.Time, error) {
	if s = strings.TrimSpace(s); s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dto.DateLayout, s)
}

// DateQuery reads a date parameter, def when absent.
func (h *BaseHandler) DateQuery(c *gin.Context, key string, def time.Time) (time.Time, bool) {
	d, err := ParseDate(c.Query(key))
	switch {
	case err != nil:
		h.invalid(c, "invalid date, expected YYYY-MM-DD", "field", key)
		return time.Time{}, false
	case d.IsZero():
		return def, true
	default:
		return d, true
	}
}

func (h *BaseHandler) OK(c *gin.Context, data any)      { c.JSON(http.StatusOK, data) }
func (h *BaseHandler) Created(c *gin.Context, data any) { c.JSON(http.StatusCreated, data) }
func (h *BaseHandler) NoContent(c *gin.Context)         { c.Status(http.StatusNoContent) }

func (h *BaseHandler) Success(c *gin.Context, message string) {
	h.OK(c, dto.SuccessResponse{Success: true, Message: message})
}
