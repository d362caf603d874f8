// Package reputation provides business logic for the karma ledger and user
// ranks.
package reputation

import (
	"context"

	"go.uber.org/zap"

	"medlink-backend/internal/domain/karma"
	"medlink-backend/internal/infrastructure/observability"
	"medlink-backend/internal/repository"
	appErrors "medlink-backend/pkg/errors"
)

// Service defines the karma-related business operations.
type Service interface {
	// Record appends one activity to the user's ledger.
	Record(ctx context.Context, userID string, activityType karma.ActivityType) (*karma.Activity, error)

	// Stats returns total karma, rank, and rank progress for a user.
	Stats(ctx context.Context, userID string) (*karma.UserKarmaStats, error)

	// History returns the user's ledger, oldest first.
	History(ctx context.Context, userID string) ([]karma.Activity, error)

	// Thresholds returns the rank ladder.
	Thresholds() []karma.RankThreshold
}

type service struct {
	ledger  repository.KarmaRepository
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewService creates the reputation service.
func NewService(ledger repository.KarmaRepository, metrics *observability.Collector, logger *zap.Logger) Service {
	return &service{ledger: ledger, metrics: metrics, logger: logger}
}

func (s *service) Record(ctx context.Context, userID string, activityType karma.ActivityType) (*karma.Activity, error) {
	activity, err := karma.NewActivity(userID, activityType)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Append(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, "failed to append karma activity")
	}

	if s.metrics != nil {
		s.metrics.KarmaAwarded.WithLabelValues(string(activityType)).Add(float64(activity.Points))
	}
	s.logger.Debug("karma recorded",
		zap.String("user_id", userID),
		zap.String("activity_type", string(activityType)),
		zap.Int("points", activity.Points),
	)
	return activity, nil
}

func (s *service) Stats(ctx context.Context, userID string) (*karma.UserKarmaStats, error) {
	if userID == "" {
		return nil, appErrors.NewValidation("userID cannot be empty")
	}
	activities, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to load karma ledger")
	}
	stats := karma.StatsFor(activities)
	return &stats, nil
}

func (s *service) History(ctx context.Context, userID string) ([]karma.Activity, error) {
	if userID == "" {
		return nil, appErrors.NewValidation("userID cannot be empty")
	}
	activities, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to load karma ledger")
	}
	return activities, nil
}

func (s *service) Thresholds() []karma.RankThreshold {
	return karma.Thresholds()
}
