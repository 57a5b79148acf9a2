package handlers

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/domain/registers/sheetstock"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves /inventory.
type InventoryHandler struct {
	*BaseHandler
	service *sheetstock.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *sheetstock.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// List handles GET /inventory. Missing stock rows are created first.
func (h *InventoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.service.EnsureAll(ctx); err != nil {
		h.Error(c, err)
		return
	}
	lists, err := h.service.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, lists)
}

// Apply handles POST /inventory/:sheetId/actions.
func (h *InventoryHandler) Apply(c *gin.Context) {
	sheetID, ok := h.ParamID(c, "sheetId")
	if !ok {
		return
	}
	var req dto.InventoryActionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Apply(c.Request.Context(), sheetID, req.Action, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}
