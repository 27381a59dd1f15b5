package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceOffering is a service a professional publishes in the marketplace
type ServiceOffering struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"not null;check:chk_services_price,price >= 0" json:"price"`
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`
	Category    *Category `gorm:"constraint:OnDelete:RESTRICT;" json:"category,omitempty"`
	ProviderID  uint      `gorm:"not null;index" json:"providerId"`
	Provider    *User     `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE;" json:"provider,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the ServiceOffering model
func (ServiceOffering) TableName() string {
	return "services"
}

// BeforeCreate assigns a random UUID when none was set
func (s *ServiceOffering) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
