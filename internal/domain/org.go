package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Organization is the tenancy boundary; every other entity hangs off org_id.
type Organization struct {
	OrgID           uuid.UUID      `gorm:"column:org_id;type:uuid;primaryKey" json:"org_id"`
	Name            string         `gorm:"column:name;not null" json:"name"`
	LandlordProfile datatypes.JSON `gorm:"column:landlord_profile;type:jsonb" json:"landlord_profile"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Organization) TableName() string {
	return "Organizations"
}

// BeforeCreate ensures org_id is set for DBs without default uuid.
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.OrgID == uuid.Nil {
		o.OrgID = uuid.New()
	}
	return nil
}

// LandlordProfileData is the landlord identity stamped on generated documents.
type LandlordProfileData struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IDNumber string `json:"idNumber,omitempty"`
}

// Profile decodes landlord_profile; a missing or malformed column yields the
// zero profile rather than an error.
func (o *Organization) Profile() LandlordProfileData {
	var p LandlordProfileData
	if len(o.LandlordProfile) > 0 {
		_ = json.Unmarshal(o.LandlordProfile, &p)
	}
	return p
}
