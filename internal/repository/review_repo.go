package repository

import (
	"connectingbr/internal/domain"
	"context"

	"gorm.io/gorm"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts the review. The composite unique index turns a racing
// second insert for the same pair into domain.ErrDuplicateReview.
func (r *ReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicateReview
		}
		return domain.NewStorageError("review.create", err)
	}
	return nil
}

func (r *ReviewRepo) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Professional").
		First(&review, id).Error; err != nil {
		return nil, translate("review.find", err, domain.ErrNotFound)
	}
	return &review, nil
}

func (r *ReviewRepo) ExistsForPair(ctx context.Context, reviewerID, professionalID uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("reviewer_id = ? AND professional_id = ?", reviewerID, professionalID).
		Count(&n).Error; err != nil {
		return false, domain.NewStorageError("review.exists_for_pair", err)
	}
	return n > 0, nil
}

// ListAll returns every review, most recent first
func (r *ReviewRepo) ListAll(ctx context.Context) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Professional").
		Order("created_at desc").Order("id desc").
		Find(&reviews).Error; err != nil {
		return nil, domain.NewStorageError("review.list", err)
	}
	return reviews, nil
}

// ListByProfessional returns the professional's reviews, most recent first.
// The id tie-break keeps the order stable for equal timestamps.
func (r *ReviewRepo) ListByProfessional(ctx context.Context, professionalID uint) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("professional_id = ?", professionalID).
		Order("created_at desc").Order("id desc").
		Find(&reviews).Error; err != nil {
		return nil, domain.NewStorageError("review.list_by_professional", err)
	}
	return reviews, nil
}

// ProfessionalIDsReviewedBy lists the professionals a user has reviewed, lowest id first
func (r *ReviewRepo) ProfessionalIDsReviewedBy(ctx context.Context, reviewerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("reviewer_id = ?", reviewerID).
		Distinct().Order("professional_id asc").
		Pluck("professional_id", &ids).Error; err != nil {
		return nil, domain.NewStorageError("review.professionals_reviewed_by", err)
	}
	return ids, nil
}

func (r *ReviewRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return domain.NewStorageError("review.update", err)
	}
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if res.Error != nil {
		return domain.NewStorageError("review.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteInvolving removes every review written or received by the user
func (r *ReviewRepo) DeleteInvolving(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("(reviewer_id = ? OR professional_id = ?)", userID, userID).
		Delete(&domain.Review{}).Error; err != nil {
		return domain.NewStorageError("review.delete_involving", err)
	}
	return nil
}

// MeanAndCountByProfessional aggregates ratings in one query
func (r *ReviewRepo) MeanAndCountByProfessional(ctx context.Context, professionalID uint) (domain.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(id) AS count").
		Where("professional_id = ?", professionalID).
		Scan(&row).Error; err != nil {
		return domain.RatingSummary{}, domain.NewStorageError("review.mean_and_count", err)
	}
	return domain.RatingSummary{Average: row.Average, Count: row.Count}, nil
}
