package content

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

// Comment is a reply to a post. A non-empty ParentID makes it a reply to
// another comment, forming a thread.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`

	// Replies is populated when comments are assembled into a thread.
	Replies []*Comment `json:"replies,omitempty"`
}

// NewComment creates a comment after validating its content.
func NewComment(postID, parentID, authorID, body string) (*Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, appErrors.NewValidation("comment cannot be empty")
	}
	if len(body) > MaxBodyLength {
		return nil, appErrors.NewValidation("comment exceeds maximum length")
	}
	if postID == "" {
		return nil, appErrors.NewValidation("post is required")
	}
	if authorID == "" {
		return nil, appErrors.NewValidation("author is required")
	}

	return &Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		ParentID:  parentID,
		AuthorID:  authorID,
		Content:   body,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// BuildThread arranges a flat list of comments into a reply tree. Top-level
// comments are returned oldest first; replies are nested under their parent
// in the same order. Comments whose parent is missing from the input are
// treated as top-level rather than dropped.
func BuildThread(comments []Comment) []*Comment {
	byID := make(map[string]*Comment, len(comments))
	ordered := make([]*Comment, 0, len(comments))
	for i := range comments {
		c := comments[i]
		c.Replies = nil
		byID[c.ID] = &c
		ordered = append(ordered, &c)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	roots := make([]*Comment, 0, len(ordered))
	for _, c := range ordered {
		if c.ParentID == "" {
			roots = append(roots, c)
			continue
		}
		parent, ok := byID[c.ParentID]
		if !ok {
			roots = append(roots, c)
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}
	return roots
}
