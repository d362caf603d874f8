// Package feed provides business logic for posts, comments, communities,
// and voting.
package feed

import (
	"context"

	"go.uber.org/zap"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/domain/karma"
	"medlink-backend/internal/infrastructure/observability"
	"medlink-backend/internal/repository"
	"medlink-backend/internal/service/reputation"
	appErrors "medlink-backend/pkg/errors"
)

// VoteAction describes what a vote request did to the stored vote row.
type VoteAction string

const (
	VoteCreated VoteAction = "created"
	VoteFlipped VoteAction = "flipped"
	VoteRemoved VoteAction = "removed"
)

// VoteResult reports the outcome of a vote request.
type VoteResult struct {
	Action    VoteAction `json:"action"`
	Upvotes   int        `json:"upvotes"`
	Downvotes int        `json:"downvotes"`
}

// Service defines the content-related business operations.
type Service interface {
	CreatePost(ctx context.Context, authorID, communityID, title, body string, tags []string) (*content.Post, error)
	GetPost(ctx context.Context, id string) (*content.Post, error)
	ListPosts(ctx context.Context, query repository.ListPostsQuery) ([]content.Post, error)
	DeletePost(ctx context.Context, userID, id string) error

	CreateComment(ctx context.Context, authorID, postID, parentID, body string) (*content.Comment, error)
	GetThread(ctx context.Context, postID string) ([]*content.Comment, error)

	CreateCommunity(ctx context.Context, creatorID, name, description, specialty string) (*content.Community, error)
	GetCommunity(ctx context.Context, id string) (*content.Community, error)
	ListCommunities(ctx context.Context, limit, offset int) ([]content.Community, error)
	JoinCommunity(ctx context.Context, userID, communityID string) error
	LeaveCommunity(ctx context.Context, userID, communityID string) error

	Vote(ctx context.Context, userID string, targetType content.VoteTarget, targetID string, value int) (*VoteResult, error)
}

type service struct {
	posts       repository.PostRepository
	comments    repository.CommentRepository
	votes       repository.VoteRepository
	communities repository.CommunityRepository
	reputation  reputation.Service
	metrics     *observability.Collector
	logger      *zap.Logger
}

// NewService creates the feed service.
func NewService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	votes repository.VoteRepository,
	communities repository.CommunityRepository,
	rep reputation.Service,
	metrics *observability.Collector,
	logger *zap.Logger,
) Service {
	return &service{
		posts:       posts,
		comments:    comments,
		votes:       votes,
		communities: communities,
		reputation:  rep,
		metrics:     metrics,
		logger:      logger,
	}
}

// award records karma without failing the main operation. A lost karma
// entry is preferable to a lost post.
func (s *service) award(ctx context.Context, userID string, activityType karma.ActivityType) {
	if _, err := s.reputation.Record(ctx, userID, activityType); err != nil {
		s.logger.Warn("karma award failed",
			zap.String("user_id", userID),
			zap.String("activity_type", string(activityType)),
			zap.Error(err),
		)
	}
}

func (s *service) CreatePost(ctx context.Context, authorID, communityID, title, body string, tags []string) (*content.Post, error) {
	if communityID != "" {
		if _, err := s.communities.GetByID(ctx, communityID); err != nil {
			if appErrors.IsNotFound(err) {
				return nil, appErrors.NewNotFound("community not found")
			}
			return nil, err
		}
	}

	post, err := content.NewPost(authorID, communityID, title, body, tags)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, "failed to save post")
	}

	s.award(ctx, authorID, karma.ActivityCreatePost)
	if s.metrics != nil {
		s.metrics.PostsCreated.Inc()
	}
	return post, nil
}

func (s *service) GetPost(ctx context.Context, id string) (*content.Post, error) {
	if id == "" {
		return nil, appErrors.NewValidation("post id cannot be empty")
	}
	return s.posts.GetByID(ctx, id)
}

func (s *service) ListPosts(ctx context.Context, query repository.ListPostsQuery) ([]content.Post, error) {
	if query.Limit <= 0 || query.Limit > 100 {
		query.Limit = 25
	}
	return s.posts.List(ctx, query)
}

func (s *service) DeletePost(ctx context.Context, userID, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return appErrors.NewValidation("only the author can delete a post")
	}
	return s.posts.Delete(ctx, id)
}

func (s *service) CreateComment(ctx context.Context, authorID, postID, parentID, body string) (*content.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.NewNotFound("post not found")
		}
		return nil, err
	}
	if parentID != "" {
		parent, err := s.comments.GetByID(ctx, parentID)
		if err != nil {
			if appErrors.IsNotFound(err) {
				return nil, appErrors.NewNotFound("parent comment not found")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, appErrors.NewValidation("parent comment belongs to a different post")
		}
	}

	comment, err := content.NewComment(postID, parentID, authorID, body)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, "failed to save comment")
	}

	s.award(ctx, authorID, karma.ActivityCreateComment)
	if s.metrics != nil {
		s.metrics.CommentsCreated.Inc()
	}
	return comment, nil
}

func (s *service) GetThread(ctx context.Context, postID string) ([]*content.Comment, error) {
	if postID == "" {
		return nil, appErrors.NewValidation("post id cannot be empty")
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to load comments")
	}
	return content.BuildThread(comments), nil
}

func (s *service) CreateCommunity(ctx context.Context, creatorID, name, description, specialty string) (*content.Community, error) {
	community, err := content.NewCommunity(creatorID, name, description, specialty)
	if err != nil {
		return nil, err
	}
	if err := s.communities.Save(ctx, community); err != nil {
		return nil, appErrors.Wrap(err, "failed to save community")
	}

	membership, err := content.NewMembership(community.ID, creatorID, content.RoleModerator)
	if err != nil {
		return nil, err
	}
	if err := s.communities.SaveMembership(ctx, membership); err != nil {
		return nil, appErrors.Wrap(err, "failed to save creator membership")
	}

	s.award(ctx, creatorID, karma.ActivityCreateCommunity)
	return community, nil
}

func (s *service) GetCommunity(ctx context.Context, id string) (*content.Community, error) {
	if id == "" {
		return nil, appErrors.NewValidation("community id cannot be empty")
	}
	return s.communities.GetByID(ctx, id)
}

func (s *service) ListCommunities(ctx context.Context, limit, offset int) ([]content.Community, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return s.communities.List(ctx, limit, offset)
}

func (s *service) JoinCommunity(ctx context.Context, userID, communityID string) error {
	if userID == "" || communityID == "" {
		return appErrors.NewValidation("user and community are required")
	}
	if _, err := s.communities.GetByID(ctx, communityID); err != nil {
		return err
	}
	if _, err := s.communities.GetMembership(ctx, communityID, userID); err == nil {
		return appErrors.NewConflict("already a member of this community")
	} else if !appErrors.IsNotFound(err) {
		return err
	}

	membership, err := content.NewMembership(communityID, userID, content.RoleMember)
	if err != nil {
		return err
	}
	if err := s.communities.SaveMembership(ctx, membership); err != nil {
		return appErrors.Wrap(err, "failed to save membership")
	}
	if err := s.communities.AdjustMemberCount(ctx, communityID, 1); err != nil {
		s.logger.Warn("member count adjustment failed",
			zap.String("community_id", communityID),
			zap.Error(err),
		)
	}

	s.award(ctx, userID, karma.ActivityJoinCommunity)
	return nil
}

func (s *service) LeaveCommunity(ctx context.Context, userID, communityID string) error {
	membership, err := s.communities.GetMembership(ctx, communityID, userID)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return appErrors.NewNotFound("not a member of this community")
		}
		return err
	}
	if err := s.communities.DeleteMembership(ctx, membership.CommunityID, membership.UserID); err != nil {
		return appErrors.Wrap(err, "failed to delete membership")
	}
	if err := s.communities.AdjustMemberCount(ctx, communityID, -1); err != nil {
		s.logger.Warn("member count adjustment failed",
			zap.String("community_id", communityID),
			zap.Error(err),
		)
	}
	return nil
}
