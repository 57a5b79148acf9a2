package handlers

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/domain/documents/attendance"
	"tutorcenter/internal/domain/documents/enrollment"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// EnrollmentHandler serves /enrollments and /installments.
type EnrollmentHandler struct {
	*BaseHandler
	service    *enrollment.Service
	attendance *attendance.Service
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(base *BaseHandler, service *enrollment.Service, att *attendance.Service) *EnrollmentHandler {
	return &EnrollmentHandler{BaseHandler: base, service: service, attendance: att}
}

// List handles GET /enrollments.
func (h *EnrollmentHandler) List(c *gin.Context) {
	filter, ok := h.ListFilterFromQuery(c)
	if !ok {
		return
	}
	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /enrollments/:id with derived figures.
func (h *EnrollmentHandler) Get(c *gin.Context) {
	enrollmentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), enrollmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, detail)
}

// Create handles POST /enrollments.
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	e := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e)
}

// Update handles PUT /enrollments/:id.
func (h *EnrollmentHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	enrollmentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEnrollmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, enrollmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(existing)
	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}

// Close handles POST /enrollments/:id/close.
func (h *EnrollmentHandler) Close(c *gin.Context) {
	enrollmentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.CloseEnrollmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	e, err := h.service.Close(c.Request.Context(), enrollmentID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// PlanInstallments handles POST /enrollments/:id/installments/plan.
func (h *EnrollmentHandler) PlanInstallments(c *gin.Context) {
	enrollmentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.PlanInstallments(c.Request.Context(), enrollmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.ItemsResponse{Items: items})
}

// ListInstallments handles GET /enrollments/:id/installments.
func (h *EnrollmentHandler) ListInstallments(c *gin.Context) {
	enrollmentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListInstallments(c.Request.Context(), enrollmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ItemsResponse{Items: items})
}

// RecordPayment handles POST /installments/:id/payments.
func (h *EnrollmentHandler) RecordPayment(c *gin.Context) {
	installmentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	inst, err := h.service.RecordPayment(c.Request.Context(), installmentID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inst)
}

// Attendance handles GET /enrollments/:id/attendance.
func (h *EnrollmentHandler) Attendance(c *gin.Context) {
	enrollmentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	records, err := h.attendance.History(c.Request.Context(), enrollmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ItemsResponse{Items: records})
}
