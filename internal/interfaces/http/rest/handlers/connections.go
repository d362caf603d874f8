package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/social"
	"medlink-backend/internal/service/connections"
	"medlink-backend/pkg/api"
	"medlink-backend/pkg/auth"
)

// ConnectionsHandler serves friend requests and invite links.
type ConnectionsHandler struct {
	connections connections.Service
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewConnectionsHandler creates the connections handler.
func NewConnectionsHandler(svc connections.Service, logger *zap.Logger) *ConnectionsHandler {
	return &ConnectionsHandler{
		connections: svc,
		validate:    validator.New(),
		logger:      logger.Named("connections_handler"),
	}
}

type friendRequestRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

// SendFriendRequest handles POST /api/v1/friends/requests.
func (h *ConnectionsHandler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req friendRequestRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.connections.SendFriendRequest(r.Context(), user.UserID, req.RecipientID)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusCreated, request)
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

// RespondToFriendRequest handles POST /api/v1/friends/requests/{requestID}/respond.
func (h *ConnectionsHandler) RespondToFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req respondRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}

	request, err := h.connections.RespondToFriendRequest(r.Context(), user.UserID, chi.URLParam(r, "requestID"), req.Accept)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, request)
}

// ListFriendRequests handles GET /api/v1/friends/requests with an optional
// status filter.
func (h *ConnectionsHandler) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	status := social.FriendRequestStatus(r.URL.Query().Get("status"))
	requests, err := h.connections.ListFriendRequests(r.Context(), user.UserID, status)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// Friends handles GET /api/v1/friends.
func (h *ConnectionsHandler) Friends(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	friends, err := h.connections.Friends(r.Context(), user.UserID)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

type createInviteRequest struct {
	CommunityID string `json:"community_id"`
	TTLHours    int    `json:"ttl_hours" validate:"min=0,max=8760"`
	MaxUses     int    `json:"max_uses" validate:"min=0"`
}

// CreateInvite handles POST /api/v1/invites.
func (h *ConnectionsHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createInviteRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	invite, err := h.connections.CreateInvite(r.Context(), user.UserID, req.CommunityID,
		time.Duration(req.TTLHours)*time.Hour, req.MaxUses)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusCreated, invite)
}

// RedeemInvite handles POST /api/v1/invites/{code}/redeem. Expiry and use
// limits are re-checked on every attempt.
func (h *ConnectionsHandler) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	invite, err := h.connections.RedeemInvite(r.Context(), user.UserID, chi.URLParam(r, "code"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, invite)
}
