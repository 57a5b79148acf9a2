package handlers

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/documents/attendance"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// AttendanceHandler serves /attendance.
type AttendanceHandler struct {
	*BaseHandler
	service *attendance.Service
	clock   domain.Clock
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(base *BaseHandler, service *attendance.Service, clock domain.Clock) *AttendanceHandler {
	return &AttendanceHandler{BaseHandler: base, service: service, clock: clock}
}

// Submit handles POST /attendance/submit.
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req dto.SubmitAttendanceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	date := req.Date.Time
	if date.IsZero() {
		date = h.clock.Today()
	}

	result, err := h.service.SubmitClass(c.Request.Context(), req.ClassID, date, req.Items)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
