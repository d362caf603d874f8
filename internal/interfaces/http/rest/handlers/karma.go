package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"medlink-backend/internal/service/reputation"
	"medlink-backend/pkg/api"
	"medlink-backend/pkg/auth"
)

// KarmaHandler serves karma stats, history, and the rank ladder.
type KarmaHandler struct {
	reputation reputation.Service
	logger     *zap.Logger
}

// NewKarmaHandler creates the karma handler.
func NewKarmaHandler(svc reputation.Service, logger *zap.Logger) *KarmaHandler {
	return &KarmaHandler{reputation: svc, logger: logger.Named("karma_handler")}
}

// MyStats handles GET /api/v1/karma. It returns the caller's totals, rank,
// and progress toward the next rank.
func (h *KarmaHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	stats, err := h.reputation.Stats(r.Context(), user.UserID)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, stats)
}

// UserStats handles GET /api/v1/karma/{userID}.
func (h *KarmaHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reputation.Stats(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, stats)
}

// History handles GET /api/v1/karma/history and returns the caller's
// activity ledger, oldest first.
func (h *KarmaHandler) History(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	history, err := h.reputation.History(r.Context(), user.UserID)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"activities": history})
}

// Ranks handles GET /api/v1/karma/ranks and returns the fixed rank ladder.
func (h *KarmaHandler) Ranks(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, map[string]interface{}{"ranks": h.reputation.Thresholds()})
}
