package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scandent/orline/internal/server/http/dto"
)

// AdminHandler exposes administration endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// IssueInvite handles POST /api/admin/invites.
func (h *AdminHandler) IssueInvite(c *gin.Context) {
	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	invite, err := h.facade.IssueInvite(c.Request.Context(), CurrentUserID(c), req.DoctorName, req.DoctorEmail, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.InviteResponse{
		Code:        invite.Code,
		DoctorName:  invite.DoctorName,
		DoctorEmail: invite.DoctorEmail,
		ExpiresAt:   invite.ExpiresAt,
	})
}

// Doctors handles GET /api/admin/doctors.
func (h *AdminHandler) Doctors(c *gin.Context) {
	doctors, err := h.facade.Doctors(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		response = append(response, dto.DoctorResponse{
			ID:        d.ID,
			Name:      d.Name,
			Email:     d.Email,
			Blocked:   d.Blocked,
			CreatedAt: d.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
