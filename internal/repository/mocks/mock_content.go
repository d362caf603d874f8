package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/repository"
)

// MockPostRepository is an in-memory PostRepository.
type MockPostRepository struct {
	failures
	mu    sync.RWMutex
	posts map[string]*content.Post
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{posts: make(map[string]*content.Post)}
}

func (m *MockPostRepository) Save(ctx context.Context, post *content.Post) error {
	if err := m.failure("Save"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*content.Post, error) {
	if err := m.failure("GetByID"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *post
	return &cp, nil
}

func (m *MockPostRepository) List(ctx context.Context, query repository.ListPostsQuery) ([]content.Post, error) {
	if err := m.failure("List"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]content.Post, 0)
	for _, post := range m.posts {
		if query.CommunityID != "" && post.CommunityID != query.CommunityID {
			continue
		}
		if query.AuthorID != "" && post.AuthorID != query.AuthorID {
			continue
		}
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if query.Offset > 0 {
		if query.Offset >= len(out) {
			return []content.Post{}, nil
		}
		out = out[query.Offset:]
	}
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (m *MockPostRepository) RecentSince(ctx context.Context, since time.Time, limit int) ([]content.Post, error) {
	if err := m.failure("RecentSince"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]content.Post, 0)
	for _, post := range m.posts {
		if post.CreatedAt.Before(since) {
			continue
		}
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	if err := m.failure("Delete"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	return nil
}

func (m *MockPostRepository) AdjustVotes(ctx context.Context, id string, upDelta, downDelta int) error {
	if err := m.failure("AdjustVotes"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	post.Upvotes += upDelta
	post.Downvotes += downDelta
	return nil
}

// MockCommentRepository is an in-memory CommentRepository.
type MockCommentRepository struct {
	failures
	mu       sync.RWMutex
	comments map[string]*content.Comment
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{comments: make(map[string]*content.Comment)}
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *content.Comment) error {
	if err := m.failure("Save"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *comment
	m.comments[comment.ID] = &cp
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*content.Comment, error) {
	if err := m.failure("GetByID"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	comment, ok := m.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *comment
	return &cp, nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID string) ([]content.Comment, error) {
	if err := m.failure("ListByPost"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]content.Comment, 0)
	for _, comment := range m.comments {
		if comment.PostID == postID {
			out = append(out, *comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	if err := m.failure("Delete"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.comments, id)
	return nil
}

func (m *MockCommentRepository) AdjustVotes(ctx context.Context, id string, upDelta, downDelta int) error {
	if err := m.failure("AdjustVotes"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	comment.Upvotes += upDelta
	comment.Downvotes += downDelta
	return nil
}

// MockVoteRepository is an in-memory VoteRepository.
type MockVoteRepository struct {
	failures
	mu    sync.RWMutex
	votes map[string]*content.Vote
}

func NewMockVoteRepository() *MockVoteRepository {
	return &MockVoteRepository{votes: make(map[string]*content.Vote)}
}

func voteKey(userID string, targetType content.VoteTarget, targetID string) string {
	return userID + "|" + string(targetType) + "|" + targetID
}

func (m *MockVoteRepository) Get(ctx context.Context, userID string, targetType content.VoteTarget, targetID string) (*content.Vote, error) {
	if err := m.failure("Get"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	vote, ok := m.votes[voteKey(userID, targetType, targetID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *vote
	return &cp, nil
}

func (m *MockVoteRepository) Save(ctx context.Context, vote *content.Vote) error {
	if err := m.failure("Save"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *vote
	m.votes[voteKey(vote.UserID, vote.TargetType, vote.TargetID)] = &cp
	return nil
}

func (m *MockVoteRepository) Delete(ctx context.Context, id string) error {
	if err := m.failure("Delete"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, vote := range m.votes {
		if vote.ID == id {
			delete(m.votes, key)
			return nil
		}
	}
	return repository.ErrNotFound
}

// MockCommunityRepository is an in-memory CommunityRepository.
type MockCommunityRepository struct {
	failures
	mu          sync.RWMutex
	communities map[string]*content.Community
	memberships map[string]*content.Membership
}

func NewMockCommunityRepository() *MockCommunityRepository {
	return &MockCommunityRepository{
		communities: make(map[string]*content.Community),
		memberships: make(map[string]*content.Membership),
	}
}

func membershipKey(communityID, userID string) string {
	return communityID + "|" + userID
}

func (m *MockCommunityRepository) Save(ctx context.Context, community *content.Community) error {
	if err := m.failure("Save"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *community
	m.communities[community.ID] = &cp
	return nil
}

func (m *MockCommunityRepository) GetByID(ctx context.Context, id string) (*content.Community, error) {
	if err := m.failure("GetByID"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	community, ok := m.communities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *community
	return &cp, nil
}

func (m *MockCommunityRepository) List(ctx context.Context, limit, offset int) ([]content.Community, error) {
	if err := m.failure("List"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]content.Community, 0, len(m.communities))
	for _, community := range m.communities {
		out = append(out, *community)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset > 0 {
		if offset >= len(out) {
			return []content.Community{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockCommunityRepository) GetMembership(ctx context.Context, communityID, userID string) (*content.Membership, error) {
	if err := m.failure("GetMembership"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	membership, ok := m.memberships[membershipKey(communityID, userID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *membership
	return &cp, nil
}

func (m *MockCommunityRepository) SaveMembership(ctx context.Context, membership *content.Membership) error {
	if err := m.failure("SaveMembership"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *membership
	m.memberships[membershipKey(membership.CommunityID, membership.UserID)] = &cp
	return nil
}

func (m *MockCommunityRepository) DeleteMembership(ctx context.Context, communityID, userID string) error {
	if err := m.failure("DeleteMembership"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.memberships, membershipKey(communityID, userID))
	return nil
}

func (m *MockCommunityRepository) AdjustMemberCount(ctx context.Context, communityID string, delta int) error {
	if err := m.failure("AdjustMemberCount"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if community, ok := m.communities[communityID]; ok {
		community.MemberCount += delta
	}
	return nil
}
