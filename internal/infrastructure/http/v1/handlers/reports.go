package handlers

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/domain"
	"tutorcenter/internal/domain/reports"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// ReportHandler serves /reports.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
	clock   domain.Clock
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service, clock domain.Clock) *ReportHandler {
	return &ReportHandler{BaseHandler: base, service: service, clock: clock}
}

// Dashboard handles GET /reports/dashboard?date=, today by default.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	date, ok := h.DateQuery(c, "date", h.clock.Today())
	if !ok {
		return
	}
	d, err := h.service.Dashboard(c.Request.Context(), date)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}

// Sheets handles GET /reports/sheets.
func (h *ReportHandler) Sheets(c *gin.Context) {
	groups, err := h.service.SheetDashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ItemsResponse{Items: groups})
}

// WeeklyActive handles GET /reports/weekly-active.
func (h *ReportHandler) WeeklyActive(c *gin.Context) {
	w, err := h.service.WeeklyActive(c.Request.Context(), h.clock.Today())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, w)
}

// AttendanceDetails handles GET /reports/attendance-details.
func (h *ReportHandler) AttendanceDetails(c *gin.Context) {
	classes, err := h.service.AttendanceDetails(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ItemsResponse{Items: classes})
}
