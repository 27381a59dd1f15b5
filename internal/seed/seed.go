package seed

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/repository"
	"connectingbr/internal/services"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultPassword is shared by every seeded account
const DefaultPassword = "Connecting@123"

type categorySeed struct {
	Name, Description, Icon string
	Order                   int
}

type userSeed struct {
	Name, Surname, Email string
	Role                 domain.Role
	BusinessName         string
	BusinessDescription  string
	Website              string
	Category             string
}

type reviewSeed struct {
	Rating                      int
	Comment                     string
	ReviewerEmail, Professional string
}

type serviceSeed struct {
	Name, Description string
	Price             float64
	Category          string
	ProviderEmail     string
}

var categories = []categorySeed{
	{"Health", "Medical and wellness services", "assets/images/health.png", 0},
	{"Beauty", "Beauty and aesthetic services", "assets/images/beauty.png", 1},
	{"Services", "General and professional services", "assets/images/services.png", 2},
	{"Others", "Other specialized services", "assets/images/others.png", 3},
}

var users = []userSeed{
	{Name: "Admin", Surname: "System", Email: "admin@connectingbr.com", Role: domain.RoleAdmin},
	{Name: "João", Surname: "Silva", Email: "joao@connectingbr.com", Role: domain.RoleClient},
	{
		Name:                "Maria",
		Surname:             "Santos",
		Email:               "maria@connectingbr.com",
		Role:                domain.RoleProfessional,
		BusinessName:        "Maria Beauty Salon",
		BusinessDescription: "Professional beauty services with over 10 years of experience",
		Website:             "http://mariabeauty.com",
		Category:            "Beauty",
	},
}

var reviews = []reviewSeed{
	{5, "Excelente profissional! Superou minhas expectativas.", "joao@connectingbr.com", "maria@connectingbr.com"},
	{4, "Muito bom atendimento, recomendo!", "admin@connectingbr.com", "maria@connectingbr.com"},
}

var offerings = []serviceSeed{
	{"Hair Styling", "Professional hair cutting and styling services", 8, "Beauty", "maria@connectingbr.com"},
	{"Nutritionist Consultation", "Personalized nutrition plans and health assessment", 20, "Health", "maria@connectingbr.com"},
	{"Home Cleaning", "Complete residential cleaning service", 13, "Services", "maria@connectingbr.com"},
}

// Run inserts the demo data. Rows that already exist are left alone, so it
// can run repeatedly. Reviews go through the review service and the average
// ratings are derived from them.
func Run(ctx context.Context, db *gorm.DB) error {
	categoryIDs, err := seedCategories(ctx, db)
	if err != nil {
		return err
	}
	accounts, err := seedUsers(ctx, db, categoryIDs)
	if err != nil {
		return err
	}
	if err := seedReviews(ctx, db, accounts); err != nil {
		return err
	}
	return seedServices(ctx, db, categoryIDs, accounts)
}

func seedCategories(ctx context.Context, db *gorm.DB) (map[string]uint, error) {
	repo := repository.NewCategoryRepo(db)
	svc := services.NewCategoryService(db)
	ids := map[string]uint{}
	for _, s := range categories {
		existing, err := repo.FindByName(ctx, s.Name)
		if err == nil {
			ids[s.Name] = existing.ID
			continue
		}
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		description, icon, order := s.Description, s.Icon, s.Order
		created, err := svc.Create(ctx, services.CreateCategoryInput{Name: s.Name, Description: &description, Icon: &icon, Order: &order})
		if err != nil {
			return nil, err
		}
		ids[s.Name] = created.ID
		logrus.WithField("category", s.Name).Info("Seeded category")
	}
	return ids, nil
}

func seedUsers(ctx context.Context, db *gorm.DB, categoryIDs map[string]uint) (map[string]*domain.User, error) {
	repo := repository.NewUserRepo(db)
	svc := services.NewUserService(db)
	accounts := map[string]*domain.User{}
	for _, s := range users {
		existing, err := repo.FindByEmail(ctx, s.Email)
		if err == nil {
			accounts[s.Email] = existing
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		in := services.CreateUserInput{
			RegisterInput: services.RegisterInput{
				Name:            s.Name,
				Surname:         s.Surname,
				Email:           s.Email,
				ConfirmEmail:    s.Email,
				Password:        DefaultPassword,
				ConfirmPassword: DefaultPassword,
			},
			Role: string(s.Role),
		}
		if s.BusinessName != "" {
			in.BusinessName = &s.BusinessName
			in.BusinessDescription = &s.BusinessDescription
			in.Website = &s.Website
		}
		if id, ok := categoryIDs[s.Category]; ok {
			in.CategoryID = &id
		}
		created, err := svc.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		accounts[s.Email] = created
		logrus.WithFields(logrus.Fields{"email": s.Email, "role": s.Role}).Info("Seeded user")
	}
	return accounts, nil
}

func seedReviews(ctx context.Context, db *gorm.DB, accounts map[string]*domain.User) error {
	svc := services.NewReviewService(db)
	for _, s := range reviews {
		reviewer, professional := accounts[s.ReviewerEmail], accounts[s.Professional]
		if reviewer == nil || professional == nil {
			logrus.WithFields(logrus.Fields{"reviewer": s.ReviewerEmail, "professional": s.Professional}).Warn("Skipping review with unknown users")
			continue
		}
		comment := s.Comment
		_, err := svc.Create(ctx, reviewer.ID, services.CreateReviewInput{ProfessionalID: professional.ID, Rating: s.Rating, Comment: &comment})
		if errors.Is(err, domain.ErrDuplicateReview) {
			continue
		}
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"reviewer": s.ReviewerEmail, "professional": s.Professional, "rating": s.Rating}).Info("Seeded review")
	}
	return nil
}

func seedServices(ctx context.Context, db *gorm.DB, categoryIDs map[string]uint, accounts map[string]*domain.User) error {
	svc := services.NewOfferingService(db)
	for _, s := range offerings {
		provider := accounts[s.ProviderEmail]
		categoryID, ok := categoryIDs[s.Category]
		if provider == nil || !ok {
			logrus.WithField("service", s.Name).Warn("Skipping service with unknown provider or category")
			continue
		}
		var existing int64
		if err := db.WithContext(ctx).Model(&domain.ServiceOffering{}).
			Where("name = ? AND provider_id = ?", s.Name, provider.ID).
			Count(&existing).Error; err != nil {
			return domain.NewStorageError("seed.services", err)
		}
		if existing > 0 {
			continue
		}
		if _, err := svc.Create(ctx, provider, services.CreateServiceInput{
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			CategoryID:  categoryID,
		}); err != nil {
			return err
		}
		logrus.WithField("service", s.Name).Info("Seeded service")
	}
	return nil
}
