package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tutorcenter/internal/domain/documents/sheetupdate"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// SheetUpdateHandler serves /sheet-updates.
type SheetUpdateHandler struct {
	*BaseHandler
	service *sheetupdate.Service
}

// NewSheetUpdateHandler creates a new sheet update handler.
func NewSheetUpdateHandler(base *BaseHandler, service *sheetupdate.Service) *SheetUpdateHandler {
	return &SheetUpdateHandler{BaseHandler: base, service: service}
}

// Get handles GET /sheet-updates?date=. Without a date the latest recorded
// one is shown.
func (h *SheetUpdateHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	date, ok := h.DateQuery(c, "date", time.Time{})
	if !ok {
		return
	}
	if date.IsZero() {
		var err error
		if date, err = h.service.DefaultDate(ctx); err != nil {
			h.Error(c, err)
			return
		}
	}

	rows, err := h.service.Rows(ctx, date)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SheetUpdatesResponse{Date: dto.FormatDate(date), Rows: rows})
}

// Save handles POST /sheet-updates.
func (h *SheetUpdateHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SaveSheetUpdatesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	date := req.Date.Time
	if date.IsZero() {
		var err error
		if date, err = h.service.DefaultDate(ctx); err != nil {
			h.Error(c, err)
			return
		}
	}

	n, err := h.service.Save(ctx, date, req.Items)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SavedResponse{Date: dto.FormatDate(date), Saved: n})
}
