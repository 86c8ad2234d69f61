package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitlink-backend/internal/domains/application/model"
	"fitlink-backend/internal/domains/application/service"
	postingModel "fitlink-backend/internal/domains/posting/model"
	"fitlink-backend/internal/shared/middleware"
	"fitlink-backend/internal/shared/response"
)

// ApplicationHandler handles HTTP requests for the application domain.
type ApplicationHandler struct {
	service service.ApplicationService
}

func NewApplicationHandler(service service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	var req model.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	app, err := h.service.Apply(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, app)
}

// Invite handles POST /applications/invite
func (h *ApplicationHandler) Invite(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	var req model.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	app, err := h.service.Invite(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, app)
}

// GetByID handles GET /applications/:id
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}

	app, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// UpdateStatus handles PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	app, err := h.service.UpdateStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, app)
}

// ListByPosting handles GET /postings/:id/applications
func (h *ApplicationHandler) ListByPosting(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	postingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid posting id")
		return
	}

	var statuses []model.Status
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, model.Status(strings.TrimSpace(s)))
		}
	}

	apps, err := h.service.ListByPosting(c.Request.Context(), userID, postingID, statuses)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, apps)
}

// ListOwn handles GET /applications/mine
func (h *ApplicationHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	apps, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, apps)
}

func (h *ApplicationHandler) handleError(c *gin.Context, err error) {
	var trErr *model.InvalidTransitionError
	switch {
	case errors.As(err, &trErr):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInvalidTransition, trErr.Error())
	case errors.Is(err, postingModel.ErrPostingNotFound):
		response.ErrorResponse(c, http.StatusNotFound, postingModel.ErrCodePostingNotFound, err.Error())
	case errors.Is(err, model.ErrApplicationNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeApplicationNotFound, err.Error())
	case errors.Is(err, model.ErrDuplicateApplication):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicateApplication, err.Error())
	case errors.Is(err, model.ErrApplicantNotEligible):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeApplicantNotEligible, err.Error())
	case errors.Is(err, model.ErrPostingNotOpen):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodePostingNotOpen, err.Error())
	case errors.Is(err, model.ErrNotParticipant):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeNotParticipant, err.Error())
	case errors.Is(err, model.ErrInvalidTransition):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInvalidTransition, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
