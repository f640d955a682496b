package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is a renter within an organization.
type Tenant struct {
	TenantID  uuid.UUID      `gorm:"column:tenant_id;type:uuid;primaryKey" json:"tenant_id"`
	OrgID     uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	FullName  string         `gorm:"column:full_name;not null" json:"full_name"`
	Email     *string        `gorm:"column:email" json:"email"`
	Phone     *string        `gorm:"column:phone" json:"phone"`
	Address   *string        `gorm:"column:address" json:"address"`
	IDNumber  *string        `gorm:"column:id_number" json:"id_number"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tenant) TableName() string {
	return "Tenants"
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.TenantID == uuid.Nil {
		t.TenantID = uuid.New()
	}
	return nil
}
