package services

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/repository"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"isActive"`
	Order       *int    `json:"order" binding:"omitempty,gte=0,lte=999"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"isActive"`
	Order       *int    `json:"order" binding:"omitempty,gte=0,lte=999"`
}

// CategoryService manages the service categories. Writes are admin-only and
// gated at the router.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	categories := repository.NewCategoryRepo(s.db)
	name := strings.TrimSpace(in.Name)
	if err := s.ensureNameFree(ctx, categories, name, 0); err != nil {
		return nil, err
	}
	category := &domain.Category{
		Name:        name,
		Description: in.Description,
		Icon:        in.Icon,
		IsActive:    true,
	}
	if in.Order != nil {
		category.Order = *in.Order
	}
	if err := categories.Create(ctx, category); err != nil {
		return nil, err
	}
	// Create skips zero values that have a column default and reads the default back
	if in.IsActive != nil && !*in.IsActive {
		return categories.UpdateFields(ctx, category.ID, map[string]any{"is_active": false})
	}
	return category, nil
}

// FindAll lists active categories first, or only active ones when activeOnly is set
func (s *CategoryService) FindAll(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return repository.NewCategoryRepo(s.db).List(ctx, activeOnly)
}

func (s *CategoryService) FindOne(ctx context.Context, id uint) (*domain.Category, error) {
	return repository.NewCategoryRepo(s.db).FindByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, id uint, in UpdateCategoryInput) (*domain.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	categories := repository.NewCategoryRepo(s.db)
	if _, err := categories.FindByID(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := s.ensureNameFree(ctx, categories, name, id); err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Icon != nil {
		fields["icon"] = *in.Icon
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.Order != nil {
		fields["sort_order"] = *in.Order
	}
	return categories.UpdateFields(ctx, id, fields)
}

// Remove deletes a category. Users pointing at it are detached; services block the delete.
func (s *CategoryService) Remove(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := repository.NewCategoryRepo(tx)
		if _, err := categories.FindByID(ctx, id); err != nil {
			return err
		}
		var inUse int64
		if err := tx.WithContext(ctx).Model(&domain.ServiceOffering{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
			return domain.NewStorageError("category.in_use", err)
		}
		if inUse > 0 {
			return domain.ErrCategoryInUse
		}
		if err := tx.WithContext(ctx).Model(&domain.User{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return domain.NewStorageError("category.detach_users", err)
		}
		return categories.Delete(ctx, id)
	})
	return txError("category.remove", err)
}

func (s *CategoryService) ensureNameFree(ctx context.Context, categories *repository.CategoryRepo, name string, exceptID uint) error {
	existing, err := categories.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != exceptID:
		return domain.ErrCategoryExists
	case err == nil, errors.Is(err, domain.ErrCategoryNotFound):
		return nil
	default:
		return err
	}
}
