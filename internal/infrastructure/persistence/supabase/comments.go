package supabase

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/repository"
)

// CommentStore implements repository.CommentRepository.
type CommentStore struct {
	store *Store
}

// NewCommentStore creates the comments adapter.
func NewCommentStore(store *Store) *CommentStore {
	return &CommentStore{store: store}
}

type commentRow struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}

func commentFromRow(row commentRow) content.Comment {
	return content.Comment{
		ID:        row.ID,
		PostID:    row.PostID,
		AuthorID:  row.AuthorID,
		ParentID:  row.ParentID,
		Content:   row.Content,
		Upvotes:   row.Upvotes,
		Downvotes: row.Downvotes,
		CreatedAt: row.CreatedAt,
	}
}

func (s *CommentStore) Save(ctx context.Context, comment *content.Comment) error {
	row := commentRow{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		Upvotes:   comment.Upvotes,
		Downvotes: comment.Downvotes,
		CreatedAt: comment.CreatedAt,
	}
	_, _, err := s.store.rest.From(tableComments).
		Insert(row, true, "id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("comments.save", err)
	}
	return nil
}

func (s *CommentStore) GetByID(ctx context.Context, id string) (*content.Comment, error) {
	var rows []commentRow
	_, err := s.store.rest.From(tableComments).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("comments.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	comment := commentFromRow(rows[0])
	return &comment, nil
}

func (s *CommentStore) ListByPost(ctx context.Context, postID string) ([]content.Comment, error) {
	var rows []commentRow
	_, err := s.store.rest.From(tableComments).
		Select("*", "", false).
		Eq("post_id", postID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("comments.list", err)
	}
	out := make([]content.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, commentFromRow(row))
	}
	return out, nil
}

func (s *CommentStore) Delete(ctx context.Context, id string) error {
	_, _, err := s.store.rest.From(tableComments).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return repository.NewFetchError("comments.delete", err)
	}
	return nil
}

func (s *CommentStore) AdjustVotes(ctx context.Context, id string, upDelta, downDelta int) error {
	return adjustVoteCounters(s.store, tableComments, id, upDelta, downDelta, "comments.adjust_votes")
}
