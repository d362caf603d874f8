// Package handlers holds the HTTP handlers for the JSON API. Handlers
// decode and validate the request, delegate to a service, and map the
// result through pkg/api; no business rules live here.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/repository"
	"medlink-backend/internal/service/feed"
	"medlink-backend/pkg/api"
	"medlink-backend/pkg/auth"
)

// FeedHandler serves posts, comments, communities, and votes.
type FeedHandler struct {
	feed     feed.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewFeedHandler creates the feed handler.
func NewFeedHandler(svc feed.Service, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feed:     svc,
		validate: validator.New(),
		logger:   logger.Named("feed_handler"),
	}
}

type createPostRequest struct {
	CommunityID string   `json:"community_id"`
	Title       string   `json:"title" validate:"required,max=300"`
	Content     string   `json:"content" validate:"max=40000"`
	Tags        []string `json:"tags" validate:"max=10,dive,max=50"`
}

// CreatePost handles POST /api/v1/posts.
func (h *FeedHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createPostRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.feed.CreatePost(r.Context(), user.UserID, req.CommunityID, req.Title, req.Content, req.Tags)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusCreated, post)
}

// GetPost handles GET /api/v1/posts/{postID}.
func (h *FeedHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.feed.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, post)
}

// ListPosts handles GET /api/v1/posts with community, author, limit and
// offset query parameters.
func (h *FeedHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := repository.ListPostsQuery{
		CommunityID: r.URL.Query().Get("community"),
		AuthorID:    r.URL.Query().Get("author"),
		Limit:       queryInt(r, "limit", 0),
		Offset:      queryInt(r, "offset", 0),
	}
	posts, err := h.feed.ListPosts(r.Context(), query)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// DeletePost handles DELETE /api/v1/posts/{postID}. Only the author may
// delete.
func (h *FeedHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.feed.DeletePost(r.Context(), user.UserID, chi.URLParam(r, "postID")); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusNoContent, nil)
}

type createCommentRequest struct {
	ParentID string `json:"parent_id"`
	Content  string `json:"content" validate:"required,max=10000"`
}

// CreateComment handles POST /api/v1/posts/{postID}/comments.
func (h *FeedHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createCommentRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.feed.CreateComment(r.Context(), user.UserID, chi.URLParam(r, "postID"), req.ParentID, req.Content)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusCreated, comment)
}

// GetThread handles GET /api/v1/posts/{postID}/comments and returns the
// nested comment tree.
func (h *FeedHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.feed.GetThread(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"comments": thread})
}

type createCommunityRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Specialty   string `json:"specialty" validate:"max=100"`
}

// CreateCommunity handles POST /api/v1/communities.
func (h *FeedHandler) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createCommunityRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	community, err := h.feed.CreateCommunity(r.Context(), user.UserID, req.Name, req.Description, req.Specialty)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusCreated, community)
}

// GetCommunity handles GET /api/v1/communities/{communityID}.
func (h *FeedHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	community, err := h.feed.GetCommunity(r.Context(), chi.URLParam(r, "communityID"))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, community)
}

// ListCommunities handles GET /api/v1/communities.
func (h *FeedHandler) ListCommunities(w http.ResponseWriter, r *http.Request) {
	communities, err := h.feed.ListCommunities(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{"communities": communities})
}

// JoinCommunity handles POST /api/v1/communities/{communityID}/join.
func (h *FeedHandler) JoinCommunity(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.feed.JoinCommunity(r.Context(), user.UserID, chi.URLParam(r, "communityID")); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"status": "joined"})
}

// LeaveCommunity handles POST /api/v1/communities/{communityID}/leave.
func (h *FeedHandler) LeaveCommunity(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.feed.LeaveCommunity(r.Context(), user.UserID, chi.URLParam(r, "communityID")); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"status": "left"})
}

type voteRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=post comment"`
	TargetID   string `json:"target_id" validate:"required"`
	Value      int    `json:"value" validate:"required,oneof=-1 1"`
}

// Vote handles POST /api/v1/votes. Voting is a toggle: repeating a vote
// removes it, voting the other way flips it.
func (h *FeedHandler) Vote(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req voteRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorFrom(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.feed.Vote(r.Context(), user.UserID, content.VoteTarget(req.TargetType), req.TargetID, req.Value)
	if err != nil {
		api.ErrorFrom(w, err)
		return
	}
	api.Success(w, http.StatusOK, result)
}

// queryInt parses an integer query parameter, returning fallback when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
