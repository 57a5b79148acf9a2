package handlers

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/domain/alerts"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// AlertHandler serves /alerts.
type AlertHandler struct {
	*BaseHandler
	service *alerts.Service
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(base *BaseHandler, service *alerts.Service) *AlertHandler {
	return &AlertHandler{BaseHandler: base, service: service}
}

// List handles GET /alerts.
func (h *AlertHandler) List(c *gin.Context) {
	items, err := h.service.NearComplete(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.AlertsResponse{Rule: h.service.Rule().String(), Items: items})
}

// Mark handles POST /alerts/:enrollmentId/mark.
func (h *AlertHandler) Mark(c *gin.Context) {
	enrollmentID, ok := h.ParamID(c, "enrollmentId")
	if !ok {
		return
	}
	var req dto.MarkNotifiedRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.Mark(c.Request.Context(), enrollmentID, req.Method)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}
