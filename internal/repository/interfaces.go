// Package repository defines the data access interfaces between the
// application services and the hosted relational data store. Every
// implementation is a thin CRUD adapter; business rules stay in the domain
// and service layers and are re-evaluated per request.
package repository

import (
	"context"
	"time"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/domain/insight"
	"medlink-backend/internal/domain/karma"
	"medlink-backend/internal/domain/messaging"
	"medlink-backend/internal/domain/social"
	"medlink-backend/internal/domain/user"
)

// ListPostsQuery filters and pages the post feed.
type ListPostsQuery struct {
	CommunityID string
	AuthorID    string
	Limit       int
	Offset      int
}

// PostRepository persists posts.
type PostRepository interface {
	Save(ctx context.Context, post *content.Post) error
	GetByID(ctx context.Context, id string) (*content.Post, error)
	List(ctx context.Context, query ListPostsQuery) ([]content.Post, error)

	// RecentSince returns posts created at or after the given time, newest
	// first, capped at limit. This is the query feeding trend analysis.
	RecentSince(ctx context.Context, since time.Time, limit int) ([]content.Post, error)

	Delete(ctx context.Context, id string) error

	// AdjustVotes applies deltas to the denormalized vote counters.
	AdjustVotes(ctx context.Context, id string, upDelta, downDelta int) error
}

// CommentRepository persists threaded comments.
type CommentRepository interface {
	Save(ctx context.Context, comment *content.Comment) error
	GetByID(ctx context.Context, id string) (*content.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]content.Comment, error)
	Delete(ctx context.Context, id string) error
	AdjustVotes(ctx context.Context, id string, upDelta, downDelta int) error
}

// VoteRepository persists individual vote rows, one per user and target.
type VoteRepository interface {
	Get(ctx context.Context, userID string, targetType content.VoteTarget, targetID string) (*content.Vote, error)
	Save(ctx context.Context, vote *content.Vote) error
	Delete(ctx context.Context, id string) error
}

// CommunityRepository persists communities and memberships.
type CommunityRepository interface {
	Save(ctx context.Context, community *content.Community) error
	GetByID(ctx context.Context, id string) (*content.Community, error)
	List(ctx context.Context, limit, offset int) ([]content.Community, error)
	GetMembership(ctx context.Context, communityID, userID string) (*content.Membership, error)
	SaveMembership(ctx context.Context, membership *content.Membership) error
	DeleteMembership(ctx context.Context, communityID, userID string) error
	AdjustMemberCount(ctx context.Context, communityID string, delta int) error
}

// KarmaRepository persists the append-only activity ledger. There is no
// update or delete; rank changes fall out of re-reading the ledger.
type KarmaRepository interface {
	Append(ctx context.Context, activity *karma.Activity) error
	ListByUser(ctx context.Context, userID string) ([]karma.Activity, error)
}

// MessageRepository persists conversations, messages, and read receipts.
type MessageRepository interface {
	SaveConversation(ctx context.Context, conversation *messaging.Conversation) error
	GetConversation(ctx context.Context, id string) (*messaging.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]messaging.Conversation, error)
	SaveMessage(ctx context.Context, message *messaging.Message) error
	ListMessages(ctx context.Context, conversationID string, limit int) ([]messaging.Message, error)
	ListReceipts(ctx context.Context, conversationID string) ([]messaging.ReadReceipt, error)
	SaveReceipts(ctx context.Context, receipts []messaging.ReadReceipt) error
}

// SocialRepository persists friend requests and invite links.
type SocialRepository interface {
	SaveFriendRequest(ctx context.Context, request *social.FriendRequest) error
	GetFriendRequest(ctx context.Context, id string) (*social.FriendRequest, error)
	UpdateFriendRequest(ctx context.Context, request *social.FriendRequest) error
	ListFriendRequests(ctx context.Context, userID string, status social.FriendRequestStatus) ([]social.FriendRequest, error)

	// FindRequestBetween returns any request connecting the two users in
	// either direction, used as the duplicate-request guard.
	FindRequestBetween(ctx context.Context, userA, userB string) (*social.FriendRequest, error)

	SaveInvite(ctx context.Context, invite *social.InviteLink) error
	GetInviteByCode(ctx context.Context, code string) (*social.InviteLink, error)
	UpdateInvite(ctx context.Context, invite *social.InviteLink) error
}

// ProfileRepository persists the profile rows mirrored from the auth
// provider.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	Upsert(ctx context.Context, profile *user.User) error
}

// SearchRepository runs full-text search against the data store.
type SearchRepository interface {
	// SearchPosts returns candidates with their baseline relevance scores.
	SearchPosts(ctx context.Context, query string, limit int) ([]insight.SearchResult, error)
}

// AnalysisRecord is the audit copy of a sentiment analysis run. It is
// write-only from this application's point of view; nothing reads it back
// for correctness.
type AnalysisRecord struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Label     insight.SentimentLabel `json:"label"`
	Score     float64                `json:"score"`
	CreatedAt time.Time              `json:"created_at"`
}

// AnalysisRepository persists analysis audit copies.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, record *AnalysisRecord) error
}
