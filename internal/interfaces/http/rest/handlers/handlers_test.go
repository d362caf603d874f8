package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/repository/mocks"
	"medlink-backend/internal/service/feed"
	"medlink-backend/internal/service/intelligence"
	"medlink-backend/internal/service/reputation"
	"medlink-backend/pkg/auth"
)

type env struct {
	posts       *mocks.MockPostRepository
	communities *mocks.MockCommunityRepository
	ledger      *mocks.MockKarmaRepository
	feed        feed.Service
	reputation  reputation.Service
}

func newEnv() *env {
	e := &env{
		posts:       mocks.NewMockPostRepository(),
		communities: mocks.NewMockCommunityRepository(),
		ledger:      mocks.NewMockKarmaRepository(),
	}
	logger := zap.NewNop()
	e.reputation = reputation.NewService(e.ledger, nil, logger)
	e.feed = feed.NewService(
		e.posts,
		mocks.NewMockCommentRepository(),
		mocks.NewMockVoteRepository(),
		e.communities,
		e.reputation,
		nil,
		logger,
	)
	return e
}

// asUser stamps an authenticated identity on the request, standing in for
// the auth middleware.
func asUser(r *http.Request, userID string) *http.Request {
	ctx := auth.WithUser(r.Context(), &auth.UserContext{UserID: userID, Email: userID + "@example.org"})
	return r.WithContext(ctx)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestCreatePost(t *testing.T) {
	e := newEnv()
	h := NewFeedHandler(e.feed, zap.NewNop())

	body := jsonBody(t, map[string]interface{}{
		"title":   "Interesting ECG finding",
		"content": "Sharing an unusual tracing from this morning's clinic.",
	})
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/posts", body), "doc-1")
	w := httptest.NewRecorder()
	h.CreatePost(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var post content.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "doc-1", post.AuthorID)
	assert.NotEmpty(t, post.ID)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	e := newEnv()
	h := NewFeedHandler(e.feed, zap.NewNop())

	body := jsonBody(t, map[string]interface{}{"title": "no token"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/posts", body)
	w := httptest.NewRecorder()
	h.CreatePost(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePostRejectsMissingTitle(t *testing.T) {
	e := newEnv()
	h := NewFeedHandler(e.feed, zap.NewNop())

	body := jsonBody(t, map[string]interface{}{"content": "body only"})
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/posts", body), "doc-1")
	w := httptest.NewRecorder()
	h.CreatePost(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePostUnknownCommunityIs404(t *testing.T) {
	e := newEnv()
	h := NewFeedHandler(e.feed, zap.NewNop())

	body := jsonBody(t, map[string]interface{}{
		"title":        "Misrouted",
		"community_id": "missing",
	})
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/posts", body), "doc-1")
	w := httptest.NewRecorder()
	h.CreatePost(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPostViaRouter(t *testing.T) {
	e := newEnv()
	h := NewFeedHandler(e.feed, zap.NewNop())

	post, err := e.feed.CreatePost(context.Background(), "doc-1", "", "A title", "A body", nil)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Get("/posts/{postID}", h.GetPost)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/"+post.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteRejectsBadValue(t *testing.T) {
	e := newEnv()
	h := NewFeedHandler(e.feed, zap.NewNop())

	body := jsonBody(t, map[string]interface{}{
		"target_type": "post",
		"target_id":   "p1",
		"value":       2,
	})
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/votes", body), "doc-1")
	w := httptest.NewRecorder()
	h.Vote(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteSelfVoteIs400(t *testing.T) {
	e := newEnv()
	h := NewFeedHandler(e.feed, zap.NewNop())

	post, err := e.feed.CreatePost(context.Background(), "doc-1", "", "A title", "A body", nil)
	require.NoError(t, err)

	body := jsonBody(t, map[string]interface{}{
		"target_type": "post",
		"target_id":   post.ID,
		"value":       1,
	})
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/votes", body), "doc-1")
	w := httptest.NewRecorder()
	h.Vote(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKarmaRanks(t *testing.T) {
	e := newEnv()
	h := NewKarmaHandler(e.reputation, zap.NewNop())

	r := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/karma/ranks", nil), "doc-1")
	w := httptest.NewRecorder()
	h.Ranks(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		Ranks []struct {
			Label string `json:"label"`
		} `json:"ranks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Len(t, payload.Ranks, 9)
}

func TestKarmaStatsAfterPosting(t *testing.T) {
	e := newEnv()
	h := NewKarmaHandler(e.reputation, zap.NewNop())

	_, err := e.feed.CreatePost(context.Background(), "doc-1", "", "A title", "A body", nil)
	require.NoError(t, err)

	r := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/karma", nil), "doc-1")
	w := httptest.NewRecorder()
	h.MyStats(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		TotalKarma int `json:"totalKarma"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 10, stats.TotalKarma)
}

func TestSearchRequiresQuery(t *testing.T) {
	svc := intelligence.NewService(
		mocks.NewMockPostRepository(),
		mocks.NewMockSearchRepository(),
		mocks.NewMockAnalysisRepository(),
		nil,
		intelligence.Config{},
		nil,
		zap.NewNop(),
	)
	h := NewIntelligenceHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileCreatedOnFirstRead(t *testing.T) {
	profiles := mocks.NewMockProfileRepository()
	h := NewProfileHandler(profiles, zap.NewNop())

	r := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil), "doc-1")
	w := httptest.NewRecorder()
	h.Me(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	stored, err := profiles.GetByID(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1@example.org", stored.Email)
}
