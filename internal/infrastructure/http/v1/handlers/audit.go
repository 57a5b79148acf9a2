package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"tutorcenter/internal/core/id"
	"tutorcenter/internal/infrastructure/http/v1/dto"
	"tutorcenter/internal/infrastructure/storage/postgres"
)

// AuditReader reads sys_audit history.
type AuditReader interface {
	History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]postgres.AuditEntry, error)
}

// AuditHandler serves /audit.
type AuditHandler struct {
	*BaseHandler
	reader AuditReader
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, reader AuditReader) *AuditHandler {
	return &AuditHandler{BaseHandler: base, reader: reader}
}

// History handles GET /audit/:entity/:id?limit=.
func (h *AuditHandler) History(c *gin.Context) {
	entityID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	limit := h.ParseIntQuery(c, "limit", 100)
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	entries, err := h.reader.History(c.Request.Context(), c.Param("entity"), entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ItemsResponse{Items: entries})
}
