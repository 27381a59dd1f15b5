package services

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/repository"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// CreateReviewInput is the body of a new review
type CreateReviewInput struct {
	ProfessionalID uint    `json:"professionalId" binding:"required"`
	Rating         int     `json:"rating"` // Range checked by ReviewRules so it surfaces as ErrInvalidRating
	Comment        *string `json:"comment" binding:"omitempty,max=2000"`
}

// UpdateReviewInput is a partial update; nil fields are left untouched
type UpdateReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// ReviewService orchestrates review writes. Each write runs in one
// transaction that locks the professional's user row, validates, writes the
// review and recomputes the professional's average rating.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// txScope bundles the collaborators bound to one transaction
type txScope struct {
	users      *repository.UserRepo
	reviews    *repository.ReviewRepo
	rules      *ReviewRules
	aggregator *RatingAggregator
}

func newTxScope(tx *gorm.DB) *txScope {
	users := repository.NewUserRepo(tx)
	reviews := repository.NewReviewRepo(tx)
	return &txScope{
		users:      users,
		reviews:    reviews,
		rules:      NewReviewRules(reviews, users),
		aggregator: NewRatingAggregator(reviews, users),
	}
}

// lockProfessional takes the row lock that serializes review writes for a
// professional. It must be the first read of the transaction so later reads
// see every review committed by the previous lock holder.
func (s *txScope) lockProfessional(ctx context.Context, professionalID uint) error {
	if _, err := s.users.LockByID(ctx, professionalID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *ReviewService) inTx(ctx context.Context, op string, fn func(scope *txScope) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTxScope(tx))
	})
	return txError(op, err)
}

// Create validates and stores a review written by reviewerID
func (s *ReviewService) Create(ctx context.Context, reviewerID uint, in CreateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var created *domain.Review
	err := s.inTx(ctx, "review.create", func(scope *txScope) error {
		if err := scope.lockProfessional(ctx, in.ProfessionalID); err != nil {
			return err
		}
		if err := scope.rules.ValidateCreate(ctx, reviewerID, in.ProfessionalID, in.Rating); err != nil {
			return err
		}
		review := &domain.Review{
			Rating:         in.Rating,
			Comment:        normalizeComment(in.Comment),
			ReviewerID:     reviewerID,
			ProfessionalID: in.ProfessionalID,
		}
		if err := scope.reviews.Create(ctx, review); err != nil {
			return err
		}
		if _, err := scope.aggregator.Recompute(ctx, in.ProfessionalID); err != nil {
			return err
		}
		loaded, err := scope.reviews.FindByID(ctx, review.ID)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a patch to a review owned by actingUserID
func (s *ReviewService) Update(ctx context.Context, reviewID, actingUserID uint, patch UpdateReviewInput) (*domain.Review, error) {
	if patch.Rating != nil && !domain.ValidRating(*patch.Rating) {
		return nil, domain.ErrInvalidRating
	}
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	professionalID, err := s.professionalOf(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	var updated *domain.Review
	err = s.inTx(ctx, "review.update", func(scope *txScope) error {
		if err := scope.lockProfessional(ctx, professionalID); err != nil {
			return err
		}
		current, err := scope.rules.ValidateMutation(ctx, reviewID, actingUserID, MutationUpdate)
		if err != nil {
			return err
		}
		fields := map[string]any{}
		ratingChanged := false
		if patch.Rating != nil && *patch.Rating != current.Rating {
			fields["rating"] = *patch.Rating
			ratingChanged = true
		}
		if patch.Comment != nil {
			fields["comment"] = normalizeComment(patch.Comment)
		}
		if err := scope.reviews.UpdateFields(ctx, reviewID, fields); err != nil {
			return err
		}
		if ratingChanged {
			if _, err := scope.aggregator.Recompute(ctx, current.ProfessionalID); err != nil {
				return err
			}
		}
		loaded, err := scope.reviews.FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes a review owned by actingUserID and returns what was deleted
func (s *ReviewService) Remove(ctx context.Context, reviewID, actingUserID uint) (*domain.Review, error) {
	professionalID, err := s.professionalOf(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	var removed *domain.Review
	err = s.inTx(ctx, "review.remove", func(scope *txScope) error {
		if err := scope.lockProfessional(ctx, professionalID); err != nil {
			return err
		}
		current, err := scope.rules.ValidateMutation(ctx, reviewID, actingUserID, MutationDelete)
		if err != nil {
			return err
		}
		if err := scope.reviews.Delete(ctx, reviewID); err != nil {
			return notFoundAs(err, domain.ErrReviewNotFound)
		}
		if _, err := scope.aggregator.Recompute(ctx, current.ProfessionalID); err != nil {
			return err
		}
		removed = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// FindAll lists every review, most recent first
func (s *ReviewService) FindAll(ctx context.Context) ([]domain.Review, error) {
	return repository.NewReviewRepo(s.db).ListAll(ctx)
}

func (s *ReviewService) FindOne(ctx context.Context, id uint) (*domain.Review, error) {
	review, err := repository.NewReviewRepo(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrReviewNotFound)
	}
	return review, nil
}

// FindByProfessional lists a professional's reviews, most recent first
func (s *ReviewService) FindByProfessional(ctx context.Context, professionalID uint) ([]domain.Review, error) {
	return repository.NewReviewRepo(s.db).ListByProfessional(ctx, professionalID)
}

// AverageRating aggregates the review rows directly, independent of the
// cached User.AverageRating.
func (s *ReviewService) AverageRating(ctx context.Context, professionalID uint) (domain.RatingSummary, error) {
	return repository.NewReviewRepo(s.db).MeanAndCountByProfessional(ctx, professionalID)
}

// professionalOf reads the review's professional before the transaction
// starts. The professional of a review never changes.
func (s *ReviewService) professionalOf(ctx context.Context, reviewID uint) (uint, error) {
	var professionalID uint
	err := s.db.WithContext(ctx).Model(&domain.Review{}).
		Where("id = ?", reviewID).
		Select("professional_id").
		Limit(1).
		Scan(&professionalID).Error
	if err != nil {
		return 0, domain.NewStorageError("review.professional_of", err)
	}
	if professionalID == 0 {
		return 0, domain.ErrReviewNotFound
	}
	return professionalID, nil
}

func normalizeComment(c *string) *string {
	if c == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*c)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
