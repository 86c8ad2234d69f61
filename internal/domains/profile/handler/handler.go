package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fitlink-backend/internal/domains/profile/model"
	"fitlink-backend/internal/domains/profile/service"
	"fitlink-backend/internal/shared/middleware"
	"fitlink-backend/internal/shared/response"
)

// ProfileHandler handles HTTP requests for the profile domain.
type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetOwn handles GET /profiles/me
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	p, err := h.service.GetOwn(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// SaveDraft handles PUT /profiles/me/draft
func (h *ProfileHandler) SaveDraft(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	var req model.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.SaveDraft(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Submit handles POST /profiles/me/submit
func (h *ProfileHandler) Submit(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	var req model.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Archive handles DELETE /profiles/me
func (h *ProfileHandler) Archive(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"archived": true})
}

// GetPublic handles GET /profiles/:id
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	p, err := h.service.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// GetByHandle handles GET /profiles/handle/:handle
func (h *ProfileHandler) GetByHandle(c *gin.Context) {
	handle := c.Param("handle")
	if handle == "" {
		response.BadRequest(c, "invalid profile handle")
		return
	}

	p, err := h.service.GetPublicByHandle(c.Request.Context(), handle)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Directory handles GET /profiles
func (h *ProfileHandler) Directory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := model.DirectoryFilter{
		UserType: c.Query("user_type"),
		Style:    c.Query("style"),
		Location: c.Query("location"),
		Cursor:   c.Query("start_after"),
		Limit:    limit,
	}

	page, err := h.service.Directory(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page.Entries, &response.Meta{
		Limit:      limit,
		NextCursor: page.NextCursor,
	})
}

func (h *ProfileHandler) handleError(c *gin.Context, err error) {
	var subErr *model.SubmissionError
	var valErrs validation.Errors
	switch {
	case errors.As(err, &valErrs):
		// Field-level DTO validation from the service layer.
		response.UnprocessableEntity(c, valErrs.Error())
	case errors.As(err, &subErr):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, model.ErrCodeProfileIncomplete,
			subErr.Message, gin.H{"field": subErr.Field})
	case errors.Is(err, model.ErrProfileNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProfileNotFound, err.Error())
	case errors.Is(err, model.ErrProfileArchived):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeProfileArchived, err.Error())
	case errors.Is(err, model.ErrProfileIncomplete):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeProfileIncomplete, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
