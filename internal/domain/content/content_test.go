package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		body    string
		author  string
		wantErr bool
	}{
		{name: "valid", title: "Case study", body: "details", author: "u1", wantErr: false},
		{name: "empty title", title: "  ", body: "details", author: "u1", wantErr: true},
		{name: "title too long", title: strings.Repeat("a", MaxTitleLength+1), body: "x", author: "u1", wantErr: true},
		{name: "body too long", title: "ok", body: strings.Repeat("a", MaxBodyLength+1), author: "u1", wantErr: true},
		{name: "missing author", title: "ok", body: "x", author: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := NewPost(tt.author, "", tt.title, tt.body, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, post.ID)
		})
	}
}

func TestNewPostNormalizesTags(t *testing.T) {
	post, err := NewPost("u1", "", "Title", "body", []string{" Cardiology ", "cardiology", "", "ICU"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cardiology", "icu"}, post.Tags)
}

func TestBuildThread(t *testing.T) {
	base := time.Now().UTC()
	comments := []Comment{
		{ID: "c3", PostID: "p", ParentID: "c1", CreatedAt: base.Add(3 * time.Minute)},
		{ID: "c1", PostID: "p", CreatedAt: base.Add(1 * time.Minute)},
		{ID: "c2", PostID: "p", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "c4", PostID: "p", ParentID: "c3", CreatedAt: base.Add(4 * time.Minute)},
	}

	roots := BuildThread(comments)
	require.Len(t, roots, 2)
	assert.Equal(t, "c1", roots[0].ID)
	assert.Equal(t, "c2", roots[1].ID)

	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "c3", roots[0].Replies[0].ID)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "c4", roots[0].Replies[0].Replies[0].ID)
}

func TestBuildThreadMissingParentBecomesRoot(t *testing.T) {
	comments := []Comment{
		{ID: "c1", PostID: "p", ParentID: "deleted", CreatedAt: time.Now()},
	}
	roots := BuildThread(comments)
	require.Len(t, roots, 1)
	assert.Equal(t, "c1", roots[0].ID)
}

func TestNewVoteValidation(t *testing.T) {
	_, err := NewVote("u1", VoteTargetPost, "p1", VoteUp)
	assert.NoError(t, err)

	_, err = NewVote("u1", VoteTargetPost, "p1", 2)
	assert.Error(t, err)

	_, err = NewVote("u1", VoteTarget("reaction"), "p1", VoteUp)
	assert.Error(t, err)

	_, err = NewVote("", VoteTargetComment, "c1", VoteDown)
	assert.Error(t, err)
}

func TestPostScore(t *testing.T) {
	post := Post{Upvotes: 7, Downvotes: 3}
	assert.Equal(t, 4, post.Score())
}
