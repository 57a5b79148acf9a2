package handlers

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/domain/portal"
	"tutorcenter/internal/infrastructure/http/v1/dto"
)

// PortalHandler serves the parent lookup. Credentials travel with every
// request; nothing is kept between calls.
type PortalHandler struct {
	*BaseHandler
	service *portal.Service
}

// NewPortalHandler creates a new portal handler.
func NewPortalHandler(base *BaseHandler, service *portal.Service) *PortalHandler {
	return &PortalHandler{BaseHandler: base, service: service}
}

// Login handles POST /portal/login.
func (h *PortalHandler) Login(c *gin.Context) {
	var req dto.PortalLoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	st, err := h.service.Login(c.Request.Context(), req.Code, req.Phone)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, portal.Profile{
		Code:        st.Code,
		DisplayName: st.DisplayName(),
		Nickname:    st.Nickname,
		GradeLevel:  st.GradeLevel,
	})
}

// Home handles POST /portal/home.
func (h *PortalHandler) Home(c *gin.Context) {
	var req dto.PortalHomeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	home, err := h.service.Home(c.Request.Context(), req.Code, req.Phone, req.EnrollmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, home)
}
