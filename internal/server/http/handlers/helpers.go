package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/server/http/dto"
	"github.com/scandent/orline/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// respondError maps domain errors onto HTTP statuses. User-facing messages
// (validation, invite and status-gate rejections) pass through verbatim so the
// client can show them as-is.
func respondError(c *gin.Context, err error) {
	var (
		ve *domainErrors.ValidationError
		se *domainErrors.StatusLockedError
		ue *domainErrors.UploadPolicyError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &ue),
		errors.Is(err, domainErrors.ErrInviteInvalid),
		errors.Is(err, domainErrors.ErrInviteUsed),
		errors.Is(err, domainErrors.ErrInviteExpired):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Credenciales incorrectas."})
	case errors.Is(err, domainErrors.ErrBlockedUser):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Tu cuenta está bloqueada."})
	case errors.Is(err, domainErrors.ErrReadOnlyRole), errors.Is(err, domainErrors.ErrNoTeam):
		c.AbortWithStatus(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrConfirmationUnknown):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.As(err, &se), errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrConfirmationPending):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Role:  string(u.Role),
		Name:  u.Name,
		Email: u.Email,
	}
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          o.ID,
		Folio:       o.Folio,
		Patient:     o.Patient,
		Referred:    o.Referred,
		Selection:   o.Selection,
		CBCT:        o.CBCT,
		Delivery:    o.Delivery,
		StudyLine:   o.StudyLine,
		Status:      string(o.Status),
		StatusLabel: model.StatusLabel(o.Status),
		DoctorNotes: o.DoctorNotes,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toLinkResponse(l model.OrderLink) dto.LinkResponse {
	return dto.LinkResponse{
		ID:        l.ID,
		OrderID:   l.OrderID,
		Title:     l.Title,
		URL:       l.URL,
		Provider:  l.Provider,
		CreatedAt: l.CreatedAt,
	}
}

func toLinkResponses(links []model.OrderLink) []dto.LinkResponse {
	out := make([]dto.LinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, toLinkResponse(l))
	}
	return out
}
