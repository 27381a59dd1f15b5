package api

import (
	"connectingbr/internal/domain"     // Roles
	"connectingbr/internal/middleware" // Auth middleware
	"connectingbr/internal/repository" // User lookup for the JWT middleware
	"connectingbr/internal/services"   // Business services
	"connectingbr/internal/utils"      // Cache
	"context"                          // Health checks
	"sync"                             // One-time validator setup
	"time"                             // Token lifetime

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin validator engine
	"github.com/go-playground/validator/v10" // Validator
	"gorm.io/gorm"                           // GORM ORM library
)

// Deps are the collaborators shared by every handler
type Deps struct {
	DB        *gorm.DB
	Cache     utils.Cache                     // utils.NopCache{} when Redis is disabled
	CachePing func(ctx context.Context) error // nil when Redis is disabled
	JWTSecret string
	JWTTTL    time.Duration
}

var validatorOnce sync.Once

// registerValidator installs the custom rules on gin's binding engine
func registerValidator() {
	validatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			services.RegisterValidations(v)
		}
	})
}

// RegisterRoutes mounts the whole API on r
func RegisterRoutes(r gin.IRouter, deps Deps) {
	registerValidator()
	if deps.Cache == nil {
		deps.Cache = utils.NopCache{}
	}

	users := services.NewUserService(deps.DB)
	reviews := services.NewReviewService(deps.DB)
	categories := services.NewCategoryService(deps.DB)
	offerings := services.NewOfferingService(deps.DB)

	auth := middleware.JWTAuthMiddleware(deps.JWTSecret, repository.NewUserRepo(deps.DB))
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r.GET("/health", HealthHandler(deps.DB, deps.CachePing))

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", RegisterHandler(users, deps.Cache, deps.JWTSecret, deps.JWTTTL))
	authGroup.POST("/login", LoginHandler(users, deps.JWTSecret, deps.JWTTTL))
	authGroup.POST("/logout", LogoutHandler())
	authGroup.GET("/profile", auth, ProfileHandler())

	// User routes
	userGroup := r.Group("/user")
	userGroup.GET("", ListUsersHandler(users))
	userGroup.GET("/professionals", ListProfessionalsHandler(users, deps.Cache))
	userGroup.GET("/search", ListProfessionalsHandler(users, deps.Cache))
	userGroup.GET("/:id", GetUserHandler(users))
	userGroup.POST("", auth, adminOnly, CreateUserHandler(users, deps.Cache))
	userGroup.PATCH("/:id", auth, UpdateUserHandler(users, deps.Cache))
	userGroup.DELETE("/:id", auth, DeleteUserHandler(users, deps.Cache))

	// Category routes, writes are admin only
	categoryGroup := r.Group("/category")
	categoryGroup.GET("", ListCategoriesHandler(categories))
	categoryGroup.GET("/:id", GetCategoryHandler(categories))
	categoryGroup.POST("", auth, adminOnly, CreateCategoryHandler(categories))
	categoryGroup.PATCH("/:id", auth, adminOnly, UpdateCategoryHandler(categories, deps.Cache))
	categoryGroup.DELETE("/:id", auth, adminOnly, DeleteCategoryHandler(categories, deps.Cache))

	// Service offering routes
	serviceGroup := r.Group("/service")
	serviceGroup.GET("", SearchServicesHandler(offerings))
	serviceGroup.GET("/:id", GetServiceHandler(offerings))
	serviceGroup.POST("", auth, CreateServiceHandler(offerings))
	serviceGroup.PATCH("/:id", auth, UpdateServiceHandler(offerings))
	serviceGroup.DELETE("/:id", auth, DeleteServiceHandler(offerings))

	// Review routes
	reviewGroup := r.Group("/review")
	reviewGroup.POST("", auth, CreateReviewHandler(reviews, deps.Cache))
	reviewGroup.GET("", ListReviewsHandler(reviews))
	reviewGroup.GET("/professional/:id", ProfessionalReviewsHandler(reviews, deps.Cache))
	reviewGroup.GET("/professional/:id/average", AverageRatingHandler(reviews))
	reviewGroup.GET("/:id", GetReviewHandler(reviews))
	reviewGroup.PATCH("/:id", auth, UpdateReviewHandler(reviews, deps.Cache))
	reviewGroup.DELETE("/:id", auth, DeleteReviewHandler(reviews, deps.Cache))
}
