package services

import (
	"connectingbr/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ reviewer, professional uint }

type fakeReviews struct {
	byID    map[uint]*domain.Review
	pairs   map[pair]bool
	summary domain.RatingSummary
	err     error
}

func (f *fakeReviews) FindByID(_ context.Context, id uint) (*domain.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReviews) ExistsForPair(_ context.Context, reviewerID, professionalID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.pairs[pair{reviewerID, professionalID}], nil
}

func (f *fakeReviews) MeanAndCountByProfessional(context.Context, uint) (domain.RatingSummary, error) {
	return f.summary, f.err
}

type fakeUsers struct {
	byID    map[uint]*domain.User
	written map[uint]float64
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) UpdateAverageRating(_ context.Context, id uint, value float64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	f.written[id] = value
	return nil
}

func newFakes() (*fakeReviews, *fakeUsers) {
	reviews := &fakeReviews{
		byID:  map[uint]*domain.Review{10: {ID: 10, ReviewerID: 1, ProfessionalID: 2, Rating: 4}},
		pairs: map[pair]bool{{1, 2}: true},
	}
	users := &fakeUsers{
		byID: map[uint]*domain.User{
			1: {ID: 1, Role: domain.RoleClient},
			2: {ID: 2, Role: domain.RoleProfessional},
			3: {ID: 3, Role: domain.RoleClient},
			4: {ID: 4, Role: domain.RoleAdmin},
		},
		written: map[uint]float64{},
	}
	return reviews, users
}

func TestReviewRules_ValidateCreate(t *testing.T) {
	reviews, users := newFakes()
	rules := NewReviewRules(reviews, users)

	tests := []struct {
		name                   string
		reviewer, professional uint
		rating                 int
		want                   error
	}{
		{"valid", 3, 2, 5, nil},
		{"lowest rating", 3, 2, 1, nil},
		{"rating below range", 3, 2, 0, domain.ErrInvalidRating},
		{"rating above range", 3, 2, 6, domain.ErrInvalidRating},
		{"rating checked before duplicate", 1, 2, 9, domain.ErrInvalidRating},
		{"duplicate", 1, 2, 3, domain.ErrDuplicateReview},
		{"self review", 2, 2, 3, domain.ErrSelfReview},
		{"missing professional", 3, 99, 3, domain.ErrProfessionalNotFound},
		{"client target", 3, 1, 3, domain.ErrNotAProfessional},
		{"admin target", 3, 4, 3, domain.ErrNotAProfessional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.ValidateCreate(context.Background(), tt.reviewer, tt.professional, tt.rating)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReviewRules_ValidateMutation(t *testing.T) {
	reviews, users := newFakes()
	rules := NewReviewRules(reviews, users)
	ctx := context.Background()

	for _, op := range []Mutation{MutationUpdate, MutationDelete} {
		t.Run(string(op), func(t *testing.T) {
			review, err := rules.ValidateMutation(ctx, 10, 1, op)
			require.NoError(t, err)
			assert.Equal(t, uint(10), review.ID)

			_, err = rules.ValidateMutation(ctx, 10, 3, op)
			assert.ErrorIs(t, err, domain.ErrNotOwner)

			_, err = rules.ValidateMutation(ctx, 11, 1, op)
			assert.ErrorIs(t, err, domain.ErrReviewNotFound)
		})
	}

	_, err := rules.ValidateMutation(ctx, 10, 1, Mutation("archive"))
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestReviewRules_StorageFailure(t *testing.T) {
	reviews, users := newFakes()
	reviews.err = domain.NewStorageError("review.exists_for_pair", errors.New("connection reset"))
	rules := NewReviewRules(reviews, users)

	err := rules.ValidateCreate(context.Background(), 3, 2, 4)
	var se *domain.StorageError
	assert.ErrorAs(t, err, &se)
}

func TestRatingAggregator_Recompute(t *testing.T) {
	reviews, users := newFakes()
	aggregator := NewRatingAggregator(reviews, users)
	ctx := context.Background()

	reviews.summary = domain.RatingSummary{Average: 4.5, Count: 2}
	summary, err := aggregator.Recompute(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, summary.Average)
	assert.Equal(t, 4.5, users.written[2])

	reviews.summary = domain.RatingSummary{Average: 3, Count: 0}
	summary, err = aggregator.Recompute(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Average)
	assert.Equal(t, 0.0, users.written[2])

	_, err = aggregator.Recompute(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrProfessionalNotFound)
}
