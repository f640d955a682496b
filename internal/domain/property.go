package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property belongs to one Organization. Deleting a property cascades to its
// units (MVP policy, no soft orphan check).
type Property struct {
	PropertyID  uuid.UUID      `gorm:"column:property_id;type:uuid;primaryKey" json:"property_id"`
	OrgID       uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	Label       string         `gorm:"column:label;not null" json:"label"`
	AddressLine *string        `gorm:"column:address_line" json:"address_line"`
	City        *string        `gorm:"column:city" json:"city"`
	Country     string         `gorm:"column:country;type:char(2);not null;default:MA" json:"country"`
	Notes       *string        `gorm:"column:notes" json:"notes"`
	Units       []Unit         `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Property) TableName() string {
	return "Properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.PropertyID == uuid.Nil {
		p.PropertyID = uuid.New()
	}
	return nil
}
