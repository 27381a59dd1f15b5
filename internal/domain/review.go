package domain

import "time"

const (
	MinRating = 1 // Lowest allowed star rating
	MaxRating = 5 // Highest allowed star rating
)

// Review Model
type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                                                         // Primary key
	Rating         int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"` // 1-5 stars
	Comment        *string   `gorm:"type:text" json:"comment"`                                                     // Optional free text
	ReviewerID     uint      `gorm:"not null;uniqueIndex:idx_reviews_reviewer_professional,priority:1" json:"reviewerId"`
	Reviewer       *User     `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE;" json:"reviewer,omitempty"`
	ProfessionalID uint      `gorm:"not null;index;uniqueIndex:idx_reviews_reviewer_professional,priority:2" json:"professionalId"`
	Professional   *User     `gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE;" json:"professional,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// ValidRating reports whether r is an allowed star rating
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// RatingSummary is the read-time aggregate over a professional's reviews.
// Average is 0 when Count is 0.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
