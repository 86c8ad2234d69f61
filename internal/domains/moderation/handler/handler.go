package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitlink-backend/internal/domains/moderation/model"
	"fitlink-backend/internal/domains/moderation/service"
	profileModel "fitlink-backend/internal/domains/profile/model"
	"fitlink-backend/internal/shared/middleware"
	"fitlink-backend/internal/shared/response"
)

// ModerationHandler exposes the admin review queue.
// Routes are mounted behind AuthMiddleware + AdminMiddleware.
type ModerationHandler struct {
	service service.ModerationService
}

func NewModerationHandler(service service.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// ListPending handles GET /admin/moderation/pending
func (h *ModerationHandler) ListPending(c *gin.Context) {
	pending, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, pending)
}

// Verify handles POST /admin/moderation/:id/verify
func (h *ModerationHandler) Verify(c *gin.Context) {
	adminID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	p, err := h.service.Verify(c.Request.Context(), profileID, adminID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Reject handles POST /admin/moderation/:id/reject
func (h *ModerationHandler) Reject(c *gin.Context) {
	adminID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	var req model.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, model.ErrCodeReasonRequired, "validation failed", err)
		return
	}

	p, err := h.service.Reject(c.Request.Context(), profileID, adminID, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *ModerationHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrReasonRequired):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeReasonRequired, err.Error())
	case errors.Is(err, profileModel.ErrNotSubmitted):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeNotSubmitted, err.Error())
	case errors.Is(err, profileModel.ErrProfileNotFound):
		response.ErrorResponse(c, http.StatusNotFound, profileModel.ErrCodeProfileNotFound, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
