package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit is a rentable space inside a property. At most one ACTIVE lease may
// exist per unit at any time (enforced at lease creation).
type Unit struct {
	UnitID     uuid.UUID `gorm:"column:unit_id;type:uuid;primaryKey" json:"unit_id"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index" json:"property_id"`
	Label      string    `gorm:"column:label;not null" json:"label"`
	UnitType   *string   `gorm:"column:unit_type" json:"unit_type"`
	Surface    *float64  `gorm:"column:surface" json:"surface"`
	Property   *Property `gorm:"foreignKey:PropertyID;references:PropertyID" json:"property,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Unit) TableName() string {
	return "Units"
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.UnitID == uuid.Nil {
		u.UnitID = uuid.New()
	}
	return nil
}
