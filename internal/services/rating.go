package services

import (
	"connectingbr/internal/domain"
	"context"
)

type ratingSource interface {
	MeanAndCountByProfessional(ctx context.Context, professionalID uint) (domain.RatingSummary, error)
}

type ratingSink interface {
	UpdateAverageRating(ctx context.Context, id uint, value float64) error
}

// RatingAggregator keeps User.AverageRating equal to the mean of the
// professional's review ratings. Both collaborators must share the
// transaction of the review write that triggered the recompute.
type RatingAggregator struct {
	source ratingSource
	sink   ratingSink
}

func NewRatingAggregator(source ratingSource, sink ratingSink) *RatingAggregator {
	return &RatingAggregator{source: source, sink: sink}
}

// Recompute aggregates the ratings and stores the mean (0 without reviews)
func (a *RatingAggregator) Recompute(ctx context.Context, professionalID uint) (domain.RatingSummary, error) {
	summary, err := a.source.MeanAndCountByProfessional(ctx, professionalID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	if summary.Count == 0 {
		summary.Average = 0
	}
	if err := a.sink.UpdateAverageRating(ctx, professionalID, summary.Average); err != nil {
		return domain.RatingSummary{}, notFoundAs(err, domain.ErrProfessionalNotFound)
	}
	return summary, nil
}
