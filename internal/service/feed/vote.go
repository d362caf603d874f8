package feed

import (
	"context"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/domain/karma"
	appErrors "medlink-backend/pkg/errors"
)

// Vote applies toggle semantics: a repeated identical vote removes the
// stored row, an opposite vote flips it, and a fresh vote creates it.
// Karma is awarded only when a row is first created, so toggling cannot
// farm points.
func (s *service) Vote(ctx context.Context, userID string, targetType content.VoteTarget, targetID string, value int) (*VoteResult, error) {
	vote, err := content.NewVote(userID, targetType, targetID, value)
	if err != nil {
		return nil, err
	}

	authorID, err := s.targetAuthor(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if authorID == userID {
		return nil, appErrors.NewValidation("cannot vote on your own content")
	}

	existing, err := s.votes.Get(ctx, userID, targetType, targetID)
	if err != nil && !appErrors.IsNotFound(err) {
		return nil, err
	}

	var action VoteAction
	switch {
	case existing == nil:
		action = VoteCreated
		if err := s.votes.Save(ctx, vote); err != nil {
			return nil, appErrors.Wrap(err, "failed to save vote")
		}
		if err := s.adjustTarget(ctx, targetType, targetID, sideDeltas(value, 1)); err != nil {
			return nil, err
		}
		if value == content.VoteUp {
			s.award(ctx, userID, karma.ActivityGiveUpvote)
			s.award(ctx, authorID, karma.ActivityReceiveUpvote)
		} else {
			s.award(ctx, authorID, karma.ActivityReceiveDownvote)
		}

	case existing.Value == value:
		action = VoteRemoved
		if err := s.votes.Delete(ctx, existing.ID); err != nil {
			return nil, appErrors.Wrap(err, "failed to remove vote")
		}
		if err := s.adjustTarget(ctx, targetType, targetID, sideDeltas(value, -1)); err != nil {
			return nil, err
		}

	default:
		action = VoteFlipped
		if err := s.votes.Save(ctx, vote); err != nil {
			return nil, appErrors.Wrap(err, "failed to flip vote")
		}
		deltas := sideDeltas(existing.Value, -1).add(sideDeltas(value, 1))
		if err := s.adjustTarget(ctx, targetType, targetID, deltas); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.VotesCast.Inc()
	}

	up, down, err := s.targetCounts(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Action: action, Upvotes: up, Downvotes: down}, nil
}

type voteDeltas struct {
	up   int
	down int
}

func (d voteDeltas) add(other voteDeltas) voteDeltas {
	return voteDeltas{up: d.up + other.up, down: d.down + other.down}
}

func sideDeltas(value, sign int) voteDeltas {
	if value == content.VoteUp {
		return voteDeltas{up: sign}
	}
	return voteDeltas{down: sign}
}

func (s *service) targetAuthor(ctx context.Context, targetType content.VoteTarget, targetID string) (string, error) {
	switch targetType {
	case content.VoteTargetPost:
		post, err := s.posts.GetByID(ctx, targetID)
		if err != nil {
			return "", err
		}
		return post.AuthorID, nil
	case content.VoteTargetComment:
		comment, err := s.comments.GetByID(ctx, targetID)
		if err != nil {
			return "", err
		}
		return comment.AuthorID, nil
	}
	return "", appErrors.NewValidation("unknown vote target")
}

func (s *service) adjustTarget(ctx context.Context, targetType content.VoteTarget, targetID string, deltas voteDeltas) error {
	var repo interface {
		AdjustVotes(ctx context.Context, id string, upDelta, downDelta int) error
	}
	if targetType == content.VoteTargetPost {
		repo = s.posts
	} else {
		repo = s.comments
	}
	if err := repo.AdjustVotes(ctx, targetID, deltas.up, deltas.down); err != nil {
		return appErrors.Wrap(err, "failed to adjust vote counters")
	}
	return nil
}

func (s *service) targetCounts(ctx context.Context, targetType content.VoteTarget, targetID string) (int, int, error) {
	if targetType == content.VoteTargetPost {
		post, err := s.posts.GetByID(ctx, targetID)
		if err != nil {
			return 0, 0, err
		}
		return post.Upvotes, post.Downvotes, nil
	}
	comment, err := s.comments.GetByID(ctx, targetID)
	if err != nil {
		return 0, 0, err
	}
	return comment.Upvotes, comment.Downvotes, nil
}
