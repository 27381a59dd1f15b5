package repository

import (
	"connectingbr/internal/domain"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceFilter narrows a service offering search; nil fields are ignored
type ServiceFilter struct {
	CategoryID *uint
	Query      string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64 // Compared against the provider's average rating
	ProviderID *uint
}

type ServiceRepo struct{ db *gorm.DB }

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Create(ctx context.Context, s *domain.ServiceOffering) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isForeignKey(err) {
			return domain.ErrCategoryNotFound
		}
		return domain.NewStorageError("service.create", err)
	}
	return nil
}

func (r *ServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOffering, error) {
	var s domain.ServiceOffering
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Provider").
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, translate("service.find", err, domain.ErrServiceNotFound)
	}
	return &s, nil
}

func (r *ServiceRepo) Search(ctx context.Context, f ServiceFilter) ([]domain.ServiceOffering, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.ServiceOffering{}).
		Joins("JOIN users ON users.id = services.provider_id").
		Preload("Category").
		Preload("Provider")
	if f.CategoryID != nil {
		q = q.Where("services.category_id = ?", *f.CategoryID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(services.name) LIKE ? OR LOWER(services.description) LIKE ?)", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("services.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("services.price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("users.average_rating >= ?", *f.MinRating)
	}
	if f.ProviderID != nil {
		q = q.Where("services.provider_id = ?", *f.ProviderID)
	}
	services := []domain.ServiceOffering{}
	if err := q.Order("users.average_rating desc").Order("services.name asc").Find(&services).Error; err != nil {
		return nil, domain.NewStorageError("service.search", err)
	}
	return services, nil
}

func (r *ServiceRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.ServiceOffering, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.ServiceOffering{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			if isForeignKey(res.Error) {
				return nil, domain.ErrCategoryNotFound
			}
			return nil, domain.NewStorageError("service.update", res.Error)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ServiceOffering{})
	if res.Error != nil {
		return domain.NewStorageError("service.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}
