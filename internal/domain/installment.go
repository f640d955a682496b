package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Installment statuses.
const (
	InstallmentUnpaid = "UNPAID"
	InstallmentPaid   = "PAID"
)

// RentInstallment is one scheduled monthly rent obligation. Amount is copied
// from the lease at creation time; installments are immutable financial facts
// and later rent changes never rewrite them.
type RentInstallment struct {
	InstallmentID uuid.UUID  `gorm:"column:installment_id;type:uuid;primaryKey" json:"installment_id"`
	LeaseID       uuid.UUID  `gorm:"column:lease_id;type:uuid;not null;index" json:"lease_id"`
	Period        string     `gorm:"column:period;type:char(7);not null" json:"period"`
	DueDate       time.Time  `gorm:"column:due_date;not null" json:"due_date"`
	Amount        int64      `gorm:"column:amount;not null" json:"amount"`
	Status        string     `gorm:"column:status;not null;default:UNPAID" json:"status"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at"`
	Lease         *Lease     `gorm:"foreignKey:LeaseID;references:LeaseID" json:"lease,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (RentInstallment) TableName() string {
	return "RentInstallments"
}

func (i *RentInstallment) BeforeCreate(tx *gorm.DB) error {
	if i.InstallmentID == uuid.Nil {
		i.InstallmentID = uuid.New()
	}
	return nil
}
