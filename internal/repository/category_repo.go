package repository

import (
	"connectingbr/internal/domain"
	"context"

	"gorm.io/gorm"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrCategoryExists
		}
		return domain.NewStorageError("category.create", err)
	}
	return nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate("category.find", err, domain.ErrCategoryNotFound)
	}
	return &c, nil
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, translate("category.find_by_name", err, domain.ErrCategoryNotFound)
	}
	return &c, nil
}

// List returns active categories first, then by display order and name
func (r *CategoryRepo) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	categories := []domain.Category{}
	if err := q.Order("is_active desc").Order("sort_order asc").Order("name asc").Find(&categories).Error; err != nil {
		return nil, domain.NewStorageError("category.list", err)
	}
	return categories, nil
}

func (r *CategoryRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*domain.Category, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			if isDuplicate(res.Error) {
				return nil, domain.ErrCategoryExists
			}
			return nil, domain.NewStorageError("category.update", res.Error)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		if isForeignKey(res.Error) {
			return domain.ErrCategoryInUse
		}
		return domain.NewStorageError("category.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
