// Package handler provides the HTTP handlers for the chat API.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/faq-chatbot/internal/middleware"
	"github.com/capitalize-ai/faq-chatbot/internal/model"
	"github.com/capitalize-ai/faq-chatbot/internal/service"
	"github.com/capitalize-ai/faq-chatbot/pkg/logger"
)

const maxBodyBytes = 1 << 20

// ChatHandler handles chat endpoints.
type ChatHandler struct {
	chatService      *service.ChatService
	maxMessageLength int
	logger           *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatSvc *service.ChatService, maxMessageLength int, log *logger.Logger) *ChatHandler {
	if maxMessageLength <= 0 {
		maxMessageLength = middleware.DefaultMaxMessageLength
	}
	return &ChatHandler{
		chatService:      chatSvc,
		maxMessageLength: maxMessageLength,
		logger:           log,
	}
}

// Index handles GET /api/v1/chat
func (h *ChatHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	view, err := h.chatService.Index(ctx, userID)
	if err != nil {
		h.requestLogger(r).Error("failed to load chat", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load chat")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Submit handles POST /api/v1/chat/messages
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req model.SubmitMessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateMessageContent(req.Message, h.maxMessageLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.chatService.Submit(ctx, userID, req.Message)
	if err != nil {
		h.requestLogger(r).Error("failed to submit message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Clear handles DELETE /api/v1/chat/messages
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	deleted, err := h.chatService.Clear(ctx, userID)
	if err != nil {
		h.requestLogger(r).Error("failed to clear history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}

	writeJSON(w, http.StatusOK, &model.ClearHistoryResponse{
		Status:  "cleared",
		Deleted: deleted,
	})
}

func (h *ChatHandler) requestLogger(r *http.Request) *logger.Logger {
	ctx := r.Context()
	return h.logger.WithRequest(middleware.GetCorrelationID(ctx), middleware.GetUserID(ctx))
}
