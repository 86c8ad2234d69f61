package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appModel "fitlink-backend/internal/domains/application/model"
	"fitlink-backend/internal/domains/chat/model"
	"fitlink-backend/internal/domains/chat/service"
	profileModel "fitlink-backend/internal/domains/profile/model"
	"fitlink-backend/internal/shared/middleware"
	"fitlink-backend/internal/shared/response"
)

// ChatHandler handles HTTP requests for the messaging side-channel.
type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// OpenConversation handles POST /conversations
func (h *ChatHandler) OpenConversation(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	var req model.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	conversation, err := h.service.OpenConversation(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, conversation)
}

// ListConversations handles GET /conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	conversations, err := h.service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, conversations)
}

// SendMessage handles POST /conversations/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), userID, conversationID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// ListMessages handles GET /conversations/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	page, err := h.service.ListMessages(c.Request.Context(), userID, conversationID, c.Query("start_after"), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page.Messages, &response.Meta{
		Limit:      limit,
		NextCursor: page.NextCursor,
	})
}

// MarkRead handles POST /conversations/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.RequireAuth(c)
	if !ok {
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, conversationID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}

func (h *ChatHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrConversationNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeConversationNotFound, err.Error())
	case errors.Is(err, profileModel.ErrProfileNotFound):
		response.ErrorResponse(c, http.StatusNotFound, profileModel.ErrCodeProfileNotFound, err.Error())
	case errors.Is(err, appModel.ErrApplicationNotFound):
		response.ErrorResponse(c, http.StatusNotFound, appModel.ErrCodeApplicationNotFound, err.Error())
	case errors.Is(err, model.ErrNotParticipant):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeNotParticipant, err.Error())
	case errors.Is(err, model.ErrSelfConversation):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeSelfConversation, err.Error())
	case errors.Is(err, model.ErrEmptyMessage):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeEmptyMessage, err.Error())
	case errors.Is(err, model.ErrApplicationRequired):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeApplicationRequired, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
