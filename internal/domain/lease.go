package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lease statuses.
const (
	LeaseActive = "ACTIVE"
	LeaseEnded  = "ENDED"
)

// Lease links one unit and one tenant within an organization. Created
// atomically with its installment schedule.
type Lease struct {
	LeaseID      uuid.UUID         `gorm:"column:lease_id;type:uuid;primaryKey" json:"lease_id"`
	OrgID        uuid.UUID         `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	UnitID       uuid.UUID         `gorm:"column:unit_id;type:uuid;not null;index" json:"unit_id"`
	TenantID     uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Status       string            `gorm:"column:status;not null;default:ACTIVE" json:"status"`
	StartDate    time.Time         `gorm:"column:start_date;not null" json:"start_date"`
	EndDate      *time.Time        `gorm:"column:end_date" json:"end_date"`
	RentAmount   int64             `gorm:"column:rent_amount;not null" json:"rent_amount"`
	Currency     string            `gorm:"column:currency;type:char(3);not null;default:MAD" json:"currency"`
	PaymentDay   int               `gorm:"column:payment_day;not null;default:1" json:"payment_day"`
	Unit         *Unit             `gorm:"foreignKey:UnitID;references:UnitID" json:"unit,omitempty"`
	Tenant       *Tenant           `gorm:"foreignKey:TenantID;references:TenantID" json:"tenant,omitempty"`
	Installments []RentInstallment `gorm:"foreignKey:LeaseID;constraint:OnDelete:CASCADE" json:"installments,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (Lease) TableName() string {
	return "Leases"
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.LeaseID == uuid.Nil {
		l.LeaseID = uuid.New()
	}
	return nil
}
