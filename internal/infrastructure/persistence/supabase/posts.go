package supabase

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/repository"
)

// PostStore implements repository.PostRepository.
type PostStore struct {
	store *Store
}

// NewPostStore creates the posts adapter.
func NewPostStore(store *Store) *PostStore {
	return &PostStore{store: store}
}

type postRow struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	CommunityID string    `json:"community_id,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func postFromRow(row postRow) content.Post {
	return content.Post{
		ID:          row.ID,
		AuthorID:    row.AuthorID,
		CommunityID: row.CommunityID,
		Title:       row.Title,
		Content:     row.Content,
		Upvotes:     row.Upvotes,
		Downvotes:   row.Downvotes,
		Tags:        row.Tags,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func postToRow(post *content.Post) postRow {
	return postRow{
		ID:          post.ID,
		AuthorID:    post.AuthorID,
		CommunityID: post.CommunityID,
		Title:       post.Title,
		Content:     post.Content,
		Upvotes:     post.Upvotes,
		Downvotes:   post.Downvotes,
		Tags:        post.Tags,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func (s *PostStore) Save(ctx context.Context, post *content.Post) error {
	row := postToRow(post)
	_, _, err := s.store.rest.From(tablePosts).
		Insert(row, true, "id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("posts.save", err)
	}
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*content.Post, error) {
	var rows []postRow
	_, err := s.store.rest.From(tablePosts).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("posts.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	post := postFromRow(rows[0])
	return &post, nil
}

func (s *PostStore) List(ctx context.Context, query repository.ListPostsQuery) ([]content.Post, error) {
	builder := s.store.rest.From(tablePosts).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if query.CommunityID != "" {
		builder = builder.Eq("community_id", query.CommunityID)
	}
	if query.AuthorID != "" {
		builder = builder.Eq("author_id", query.AuthorID)
	}
	if query.Limit > 0 {
		builder = builder.Limit(query.Limit, "")
	}
	if query.Offset > 0 {
		end := query.Offset + query.Limit - 1
		if query.Limit <= 0 {
			end = query.Offset + 99
		}
		builder = builder.Range(query.Offset, end, "")
	}

	var rows []postRow
	if _, err := builder.ExecuteTo(&rows); err != nil {
		return nil, repository.NewFetchError("posts.list", err)
	}
	out := make([]content.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, postFromRow(row))
	}
	return out, nil
}

func (s *PostStore) RecentSince(ctx context.Context, since time.Time, limit int) ([]content.Post, error) {
	var rows []postRow
	_, err := s.store.rest.From(tablePosts).
		Select("*", "", false).
		Gte("created_at", since.UTC().Format(time.RFC3339)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("posts.recent", err)
	}
	out := make([]content.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, postFromRow(row))
	}
	return out, nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	_, _, err := s.store.rest.From(tablePosts).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return repository.NewFetchError("posts.delete", err)
	}
	return nil
}

func (s *PostStore) AdjustVotes(ctx context.Context, id string, upDelta, downDelta int) error {
	return adjustVoteCounters(s.store, tablePosts, id, upDelta, downDelta, "posts.adjust_votes")
}

// adjustVoteCounters applies counter deltas with a read-modify-write. Vote
// rows are the source of truth; the counters are denormalized, so a lost
// update here self-corrects on the next adjustment.
func adjustVoteCounters(store *Store, table, id string, upDelta, downDelta int, op string) error {
	type counters struct {
		Upvotes   int `json:"upvotes"`
		Downvotes int `json:"downvotes"`
	}
	var rows []counters
	_, err := store.rest.From(table).
		Select("upvotes,downvotes", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return repository.NewFetchError(op, err)
	}
	if len(rows) == 0 {
		return repository.ErrNotFound
	}

	update := map[string]interface{}{
		"upvotes":   rows[0].Upvotes + upDelta,
		"downvotes": rows[0].Downvotes + downDelta,
	}
	_, _, err = store.rest.From(table).
		Update(update, "", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return repository.NewFetchError(op, err)
	}
	return nil
}
