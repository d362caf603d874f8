package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"medlink-backend/internal/service/intelligence"
	"medlink-backend/pkg/api"
	"medlink-backend/pkg/auth"
)

// IntelligenceHandler serves the content-analysis endpoints: analyze,
// summarize, trending topics, search, and condition insights.
type IntelligenceHandler struct {
	intelligence intelligence.Service
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewIntelligenceHandler creates the intelligence handler.
func NewIntelligenceHandler(svc intelligence.Service, logger *zap.Logger) *IntelligenceHandler {
	return &IntelligenceHandler{
		intelligence: svc,
		validate:     validator.New(),
		logger:       logger.Named("intelligence_handler"),
	}
}

type analyzeRequest struct {
	Text string `json:"text" validate:"required,max=50000"`
}

// Analyze handles POST /api/v1/analyze.
func (h *IntelligenceHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req analyzeRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.intelligence.Analyze(r.Context(), user.UserID, req.Text)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, analysis)
}

// Summarize handles POST /api/v1/summarize.
func (h *IntelligenceHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.intelligence.Summarize(r.Context(), req.Text)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"summary": summary})
}

// Trending handles GET /api/v1/trending.
func (h *IntelligenceHandler) Trending(w http.ResponseWriter, r *http.Request) {
	report, err := h.intelligence.TrendingTopics(r.Context())
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, report)
}

// Search handles GET /api/v1/search?q=...
func (h *IntelligenceHandler) Search(w http.ResponseWriter, r *http.Request) {
	response, err := h.intelligence.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, response)
}

// Insights handles GET /api/v1/insights?q=...
func (h *IntelligenceHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.intelligence.Insights(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"insights": insights})
}
