package services

import (
	"connectingbr/internal/domain"
	"context"
)

// Mutation names the ownership-gated operations on a review
type Mutation string

const (
	MutationUpdate Mutation = "update"
	MutationDelete Mutation = "delete"
)

type reviewLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.Review, error)
	ExistsForPair(ctx context.Context, reviewerID, professionalID uint) (bool, error)
}

type userLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// ReviewRules enforces the review invariants. Every check is read-only.
type ReviewRules struct {
	reviews reviewLookup
	users   userLookup
}

func NewReviewRules(reviews reviewLookup, users userLookup) *ReviewRules {
	return &ReviewRules{reviews: reviews, users: users}
}

// ValidateCreate checks a new review before anything is written.
// The rating is checked first since it needs no storage access.
func (r *ReviewRules) ValidateCreate(ctx context.Context, reviewerID, professionalID uint, rating int) error {
	if !domain.ValidRating(rating) {
		return domain.ErrInvalidRating
	}
	exists, err := r.reviews.ExistsForPair(ctx, reviewerID, professionalID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateReview
	}
	if reviewerID == professionalID {
		return domain.ErrSelfReview
	}
	professional, err := r.users.FindByID(ctx, professionalID)
	if err != nil {
		return notFoundAs(err, domain.ErrProfessionalNotFound)
	}
	if !professional.Role.IsReviewable() {
		return domain.ErrNotAProfessional
	}
	return nil
}

// ValidateMutation loads the review and checks the acting user wrote it.
// Update and delete share the same ownership rule.
func (r *ReviewRules) ValidateMutation(ctx context.Context, reviewID, actingUserID uint, op Mutation) (*domain.Review, error) {
	switch op {
	case MutationUpdate, MutationDelete:
	default:
		return nil, &domain.ValidationError{Field: "operation", Message: "unknown review mutation " + string(op)}
	}
	review, err := r.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrReviewNotFound)
	}
	if review.ReviewerID != actingUserID {
		return nil, domain.ErrNotOwner
	}
	return review, nil
}
