package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitlink-backend/internal/domains/posting/model"
	"fitlink-backend/internal/domains/posting/service"
	"fitlink-backend/internal/shared/middleware"
	"fitlink-backend/internal/shared/response"
)

// PostingHandler handles HTTP requests for the posting domain.
type PostingHandler struct {
	service service.PostingService
}

func NewPostingHandler(service service.PostingService) *PostingHandler {
	return &PostingHandler{service: service}
}

// Create handles POST /postings
func (h *PostingHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	var req model.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	posting, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, posting)
}

// GetByID handles GET /postings/:id
func (h *PostingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid posting id")
		return
	}

	posting, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, posting)
}

// UpdateStatus handles PATCH /postings/:id/status
func (h *PostingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid posting id")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	posting, err := h.service.UpdateStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, posting)
}

// List handles GET /postings
func (h *PostingHandler) List(c *gin.Context) {
	filter := h.parseFilter(c)

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page.Postings, &response.Meta{
		Limit:      filter.Limit,
		NextCursor: page.NextCursor,
	})
}

// ListOwn handles GET /postings/mine
func (h *PostingHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	filter := h.parseFilter(c)
	filter.Status = model.Status(c.Query("status"))

	page, err := h.service.ListOwn(c.Request.Context(), userID, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page.Postings, &response.Meta{
		Limit:      filter.Limit,
		NextCursor: page.NextCursor,
	})
}

func (h *PostingHandler) parseFilter(c *gin.Context) model.ListFilter {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := model.ListFilter{
		Kind:     model.Kind(c.Query("kind")),
		Style:    c.Query("style"),
		Location: c.Query("location"),
		Cursor:   c.Query("start_after"),
		Limit:    limit,
	}

	if raw := c.Query("urgent"); raw != "" {
		urgent := raw == "true"
		filter.Urgent = &urgent
	}

	return filter
}

func (h *PostingHandler) handleError(c *gin.Context, err error) {
	var trErr *model.InvalidTransitionError
	switch {
	case errors.As(err, &trErr):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInvalidTransition, trErr.Error())
	case errors.Is(err, model.ErrPostingNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodePostingNotFound, err.Error())
	case errors.Is(err, model.ErrNotPostingOwner):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeNotPostingOwner, err.Error())
	case errors.Is(err, model.ErrStudioNotEligible):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeStudioNotEligible, err.Error())
	case errors.Is(err, model.ErrInvalidTransition):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInvalidTransition, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
