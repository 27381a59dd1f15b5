package domain

import "time"

// Role is the closed set of account roles
type Role string

const (
	RoleClient       Role = "client"       // Books services and writes reviews
	RoleProfessional Role = "professional" // Offers services and receives reviews
	RoleAdmin        Role = "admin"        // Manages categories and users
)

// ParseRole maps a raw string onto a Role, reporting whether it is known
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleProfessional, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// IsReviewable reports whether a user with this role can be the target of a review
func (r Role) IsReviewable() bool {
	switch r {
	case RoleProfessional:
		return true
	case RoleClient, RoleAdmin:
		return false
	default:
		return false
	}
}

// CanOfferServices reports whether the role may publish service offerings
func (r Role) CanOfferServices() bool {
	switch r {
	case RoleProfessional, RoleAdmin:
		return true
	case RoleClient:
		return false
	default:
		return false
	}
}

// User Model
type User struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`                                       // Primary key
	Name                string    `gorm:"size:50;not null" json:"name"`                               // First name
	Surname             string    `gorm:"size:50;not null" json:"surname"`                            // Last name
	Email               string    `gorm:"size:100;uniqueIndex;not null" json:"email"`                 // Unique email
	Password            string    `gorm:"not null" json:"-"`                                          // Hashed password, never serialized
	Role                Role      `gorm:"size:20;not null;default:client;index" json:"role"`          // client, professional or admin
	BusinessName        *string   `gorm:"size:100" json:"businessName"`                               // Professional business name
	BusinessDescription *string   `gorm:"type:text" json:"businessDescription"`                       // Professional business description
	Photos              []string  `gorm:"type:text;serializer:json" json:"photos"`                    // Ordered photo URLs
	Website             *string   `gorm:"size:255" json:"website"`                                    // Website URL
	CategoryID          *uint     `gorm:"index" json:"categoryId"`                                    // Optional category reference
	Category            *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	AverageRating       float64   `gorm:"not null;default:0" json:"averageRating"` // Derived from reviews, written only by the aggregator
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
