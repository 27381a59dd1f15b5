package services

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/repository"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"required,min=10,max=2000"`
	Price       float64 `json:"price" binding:"gte=0"`
	CategoryID  uint    `json:"categoryId" binding:"required"`
	ProviderID  *uint   `json:"providerId"` // Honoured for admins only
}

type UpdateServiceInput struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,min=10,max=2000"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	CategoryID  *uint    `json:"categoryId"`
}

// OfferingService manages the services professionals publish
type OfferingService struct {
	db *gorm.DB
}

func NewOfferingService(db *gorm.DB) *OfferingService {
	return &OfferingService{db: db}
}

// Create publishes a service. The provider is the actor, unless an admin
// names another professional.
func (s *OfferingService) Create(ctx context.Context, actor *domain.User, in CreateServiceInput) (*domain.ServiceOffering, error) {
	if actor == nil || !actor.Role.CanOfferServices() {
		return nil, domain.ErrCannotOffer
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	providerID := actor.ID
	if in.ProviderID != nil && *in.ProviderID != actor.ID {
		if actor.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
		provider, err := repository.NewUserRepo(s.db).FindByID(ctx, *in.ProviderID)
		if err != nil {
			return nil, notFoundAs(err, domain.ErrUserNotFound)
		}
		if provider.Role != domain.RoleProfessional {
			return nil, domain.ErrCannotOffer
		}
		providerID = provider.ID
	}
	if _, err := repository.NewCategoryRepo(s.db).FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	offerings := repository.NewServiceRepo(s.db)
	offering := &domain.ServiceOffering{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		ProviderID:  providerID,
	}
	if err := offerings.Create(ctx, offering); err != nil {
		return nil, err
	}
	return offerings.FindByID(ctx, offering.ID)
}

func (s *OfferingService) Search(ctx context.Context, filter repository.ServiceFilter) ([]domain.ServiceOffering, error) {
	return repository.NewServiceRepo(s.db).Search(ctx, filter)
}

func (s *OfferingService) FindOne(ctx context.Context, id uuid.UUID) (*domain.ServiceOffering, error) {
	return repository.NewServiceRepo(s.db).FindByID(ctx, id)
}

func (s *OfferingService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, in UpdateServiceInput) (*domain.ServiceOffering, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	offerings := repository.NewServiceRepo(s.db)
	current, err := offerings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, current.ProviderID) {
		return nil, domain.ErrForbidden
	}
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.CategoryID != nil {
		if _, err := repository.NewCategoryRepo(s.db).FindByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *in.CategoryID
	}
	return offerings.UpdateFields(ctx, id, fields)
}

func (s *OfferingService) Remove(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	offerings := repository.NewServiceRepo(s.db)
	current, err := offerings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, current.ProviderID) {
		return domain.ErrForbidden
	}
	return offerings.Delete(ctx, id)
}
