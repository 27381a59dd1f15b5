package services

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt cost used for every stored password
const PasswordCost = bcrypt.DefaultCost

// RegisterInput is the self-service sign up body
type RegisterInput struct {
	Name                string   `json:"name" binding:"required,min=2,max=50"`
	Surname             string   `json:"surname" binding:"required,min=2,max=50"`
	Email               string   `json:"email" binding:"required,email,max=100"`
	ConfirmEmail        string   `json:"confirmEmail" binding:"required,eqfield=Email"`
	Password            string   `json:"password" binding:"required,min=8,max=50,strongpassword"`
	ConfirmPassword     string   `json:"confirmPassword" binding:"required,eqfield=Password"`
	Role                string   `json:"role" binding:"omitempty,oneof=client professional"`
	BusinessName        *string  `json:"businessName" binding:"omitempty,max=100"`
	BusinessDescription *string  `json:"businessDescription" binding:"omitempty,min=10,max=1000"`
	Photos              []string `json:"photos" binding:"omitempty,dive,url"`
	Website             *string  `json:"website" binding:"omitempty,url,max=255"`
	CategoryID          *uint    `json:"categoryId"`
}

// CreateUserInput is used by admins and may assign any role
type CreateUserInput struct {
	RegisterInput
	Role string `json:"role" binding:"omitempty,oneof=client professional admin"`
}

// UpdateUserInput is a partial profile update. Role and average rating are
// not part of it.
type UpdateUserInput struct {
	Name                *string   `json:"name" binding:"omitempty,min=2,max=50"`
	Surname             *string   `json:"surname" binding:"omitempty,min=2,max=50"`
	Email               *string   `json:"email" binding:"omitempty,email,max=100"`
	Password            *string   `json:"password" binding:"omitempty,min=8,max=50,strongpassword"`
	BusinessName        *string   `json:"businessName" binding:"omitempty,max=100"`
	BusinessDescription *string   `json:"businessDescription" binding:"omitempty,min=10,max=1000"`
	Photos              *[]string `json:"photos" binding:"omitempty,dive,url"`
	Website             *string   `json:"website" binding:"omitempty,url,max=255"`
	CategoryID          *uint     `json:"categoryId"`
}

// UserService handles accounts: sign up, credential checks and profile management
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a client or professional account
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	role := domain.RoleClient
	if in.Role != "" {
		role = domain.Role(in.Role)
	}
	return s.create(ctx, in, role)
}

// Create is the admin path and may create admins
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	role := domain.RoleClient
	if in.Role != "" {
		parsed, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, &domain.ValidationError{Field: "role", Message: "must be one of: client professional admin"}
		}
		role = parsed
	}
	return s.create(ctx, in.RegisterInput, role)
}

func (s *UserService) create(ctx context.Context, in RegisterInput, role domain.Role) (*domain.User, error) {
	users := repository.NewUserRepo(s.db)
	email := normalizeEmail(in.Email)
	taken, err := users.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailInUse
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:                strings.TrimSpace(in.Name),
		Surname:             strings.TrimSpace(in.Surname),
		Email:               email,
		Password:            string(hash),
		Role:                role,
		BusinessName:        in.BusinessName,
		BusinessDescription: in.BusinessDescription,
		Photos:              in.Photos,
		Website:             in.Website,
		CategoryID:          in.CategoryID,
	}
	if user.Photos == nil {
		user.Photos = []string{}
	}
	// The unique index still catches a concurrent sign up with the same email
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return users.FindByID(ctx, user.ID)
}

// Authenticate checks credentials. Unknown emails and wrong passwords yield
// the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := repository.NewUserRepo(s.db).FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// FindPage returns the 1-based page of users and the total user count
func (s *UserService) FindPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	return repository.NewUserRepo(s.db).ListPage(ctx, (page-1)*pageSize, pageSize)
}

func (s *UserService) FindOne(ctx context.Context, id uint) (*domain.User, error) {
	user, err := repository.NewUserRepo(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}
	return user, nil
}

// Professionals lists professionals best rated first, optionally within one
// category and matching a search term
func (s *UserService) Professionals(ctx context.Context, categoryID *uint, query string) ([]domain.User, error) {
	return repository.NewUserRepo(s.db).ListProfessionals(ctx, repository.ProfessionalFilter{CategoryID: categoryID, Query: query})
}

// Update edits a profile. Only the owner or an admin may do so.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id uint, in UpdateUserInput) (*domain.User, error) {
	if !canManage(actor, id) {
		return nil, domain.ErrForbidden
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	users := repository.NewUserRepo(s.db)
	if _, err := users.FindByID(ctx, id); err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Surname != nil {
		fields["surname"] = strings.TrimSpace(*in.Surname)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		taken, err := users.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailInUse
		}
		fields["email"] = email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), PasswordCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}
	if in.BusinessName != nil {
		fields["business_name"] = *in.BusinessName
	}
	if in.BusinessDescription != nil {
		fields["business_description"] = *in.BusinessDescription
	}
	if in.Photos != nil {
		// Map updates bypass the json serializer on the column
		encoded, err := json.Marshal(*in.Photos)
		if err != nil {
			return nil, err
		}
		fields["photos"] = string(encoded)
	}
	if in.Website != nil {
		fields["website"] = *in.Website
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *in.CategoryID
	}
	user, err := users.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}
	return user, nil
}

// Remove deletes an account. Reviews written or received by the user go
// with it and the professionals it had reviewed get their averages recomputed
// in the same transaction.
func (s *UserService) Remove(ctx context.Context, actor *domain.User, id uint) error {
	if !canManage(actor, id) {
		return domain.ErrForbidden
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := newTxScope(tx)
		if _, err := scope.users.LockByID(ctx, id); err != nil {
			return notFoundAs(err, domain.ErrUserNotFound)
		}
		reviewed, err := scope.reviews.ProfessionalIDsReviewedBy(ctx, id)
		if err != nil {
			return err
		}
		// Ascending id order, so concurrent removals never lock in opposite orders
		slices.Sort(reviewed)
		for _, professionalID := range reviewed {
			if err := scope.lockProfessional(ctx, professionalID); err != nil {
				return err
			}
		}
		if err := scope.reviews.DeleteInvolving(ctx, id); err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Where("provider_id = ?", id).Delete(&domain.ServiceOffering{}).Error; err != nil {
			return domain.NewStorageError("service.delete_by_provider", err)
		}
		if err := scope.users.Delete(ctx, id); err != nil {
			return notFoundAs(err, domain.ErrUserNotFound)
		}
		for _, professionalID := range reviewed {
			if professionalID == id {
				continue
			}
			if _, err := scope.aggregator.Recompute(ctx, professionalID); err != nil {
				return err
			}
		}
		return nil
	})
	return txError("user.remove", err)
}

func (s *UserService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	_, err := repository.NewCategoryRepo(s.db).FindByID(ctx, *id)
	return err
}

// canManage reports whether actor may edit or delete the account id
func canManage(actor *domain.User, id uint) bool {
	if actor == nil {
		return false
	}
	return actor.ID == id || actor.Role == domain.RoleAdmin
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
