package domain

import "time"

// Category Model
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"` // Unique display name
	Description *string   `gorm:"type:text" json:"description"`          // Optional description
	Icon        *string   `gorm:"size:255" json:"icon"`                  // Icon URL or asset path
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"` // Hidden from clients when false
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
