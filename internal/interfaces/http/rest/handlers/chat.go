package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"medlink-backend/internal/service/chat"
	"medlink-backend/pkg/api"
	"medlink-backend/pkg/auth"
)

// ChatHandler serves conversations, messages, and read receipts.
type ChatHandler struct {
	chat     chat.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(svc chat.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:     svc,
		validate: validator.New(),
		logger:   logger.Named("chat_handler"),
	}
}

type startConversationRequest struct {
	Title          string   `json:"title" validate:"max=200"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,dive,required"`
}

// StartConversation handles POST /api/v1/conversations.
func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req startConversationRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	conversation, err := h.chat.StartConversation(r.Context(), user.UserID, req.Title, req.ParticipantIDs)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusCreated, conversation)
}

// ListConversations handles GET /api/v1/conversations. Each entry carries
// the caller's unread count.
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	views, err := h.chat.ListConversations(r.Context(), user.UserID)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"conversations": views})
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required,max=10000"`
}

// Send handles POST /api/v1/conversations/{conversationID}/messages.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req sendMessageRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.chat.Send(r.Context(), user.UserID, chi.URLParam(r, "conversationID"), req.Body)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusCreated, message)
}

// Messages handles GET /api/v1/conversations/{conversationID}/messages.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	messages, err := h.chat.Messages(r.Context(), user.UserID, chi.URLParam(r, "conversationID"), queryInt(r, "limit", 0))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// MarkRead handles POST /api/v1/conversations/{conversationID}/read and
// returns how many messages were newly marked.
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	marked, err := h.chat.MarkRead(r.Context(), user.UserID, chi.URLParam(r, "conversationID"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]int{"marked": marked})
}
