// Package content holds the entities of the publishing surface: posts,
// threaded comments, votes, and the communities they belong to.
package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

const (
	MaxTitleLength = 200
	MaxBodyLength  = 50000
)

// Post is a submission authored by a verified professional, optionally
// scoped to a community and carrying free-form topic tags.
type Post struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	CommunityID string    `json:"community_id,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	Tags        []string  `json:"post_tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPost creates a post after validating its content.
func NewPost(authorID, communityID, title, body string, tags []string) (*Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, appErrors.NewValidation("title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return nil, appErrors.NewValidation("title exceeds maximum length")
	}
	if len(body) > MaxBodyLength {
		return nil, appErrors.NewValidation("body exceeds maximum length")
	}
	if authorID == "" {
		return nil, appErrors.NewValidation("author is required")
	}

	now := time.Now().UTC()
	return &Post{
		ID:          uuid.New().String(),
		AuthorID:    authorID,
		CommunityID: communityID,
		Title:       title,
		Content:     body,
		Tags:        normalizeTags(tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Score returns the net vote score of the post.
func (p *Post) Score() int {
	return p.Upvotes - p.Downvotes
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
