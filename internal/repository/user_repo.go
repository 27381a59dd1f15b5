package repository

import (
	"connectingbr/internal/domain"
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrEmailInUse
		}
		return domain.NewStorageError("user.create", err)
	}
	return nil
}

// FindByID returns domain.ErrNotFound when no user has the id
func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("Category").First(&u, id).Error; err != nil {
		return nil, translate("user.find", err, domain.ErrNotFound)
	}
	return &u, nil
}

// LockByID reads the user row with SELECT ... FOR UPDATE.
// Must run inside a transaction; SQLite ignores the locking clause.
func (r *UserRepo) LockByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&u).Error; err != nil {
		return nil, translate("user.lock", err, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate("user.find_by_email", err, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, domain.NewStorageError("user.email_taken", err)
	}
	return n > 0, nil
}

// ListPage returns one page of users ordered by id and the total user count
func (r *UserRepo) ListPage(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, domain.NewStorageError("user.count", err)
	}
	users := []domain.User{}
	if err := r.db.WithContext(ctx).Preload("Category").Order("id asc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, domain.NewStorageError("user.list_page", err)
	}
	return users, total, nil
}

// ProfessionalFilter narrows the professionals directory; zero fields are ignored
type ProfessionalFilter struct {
	CategoryID *uint
	Query      string // Matched against names and business details
}

// ListProfessionals orders professionals by their aggregate rating, best first
func (r *UserRepo) ListProfessionals(ctx context.Context, f ProfessionalFilter) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Preload("Category").Where("role = ?", domain.RoleProfessional)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(business_name) LIKE ? OR LOWER(business_description) LIKE ?)",
			like, like, like, like)
	}
	users := []domain.User{}
	if err := q.Order("average_rating desc").Order("id asc").Find(&users).Error; err != nil {
		return nil, domain.NewStorageError("user.list_professionals", err)
	}
	return users, nil
}

// UpdateFields applies a column map; average_rating must never be part of it
func (r *UserRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*domain.User, error) {
	delete(fields, "average_rating")
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			if isDuplicate(res.Error) {
				return nil, domain.ErrEmailInUse
			}
			return nil, domain.NewStorageError("user.update", res.Error)
		}
	}
	return r.FindByID(ctx, id)
}

// UpdateAverageRating writes the cached aggregate; only the rating aggregator calls it
func (r *UserRepo) UpdateAverageRating(ctx context.Context, id uint, value float64) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).UpdateColumn("average_rating", value)
	if res.Error != nil {
		return domain.NewStorageError("user.update_average_rating", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports zero affected rows when the value is unchanged
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return domain.NewStorageError("user.update_average_rating", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return domain.NewStorageError("user.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
