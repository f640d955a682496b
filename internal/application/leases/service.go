package leases

import (
	"context"
	"time"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service creates leases and their installment schedules. Horizon is the
// number of monthly installments materialized with each lease.
type Service struct {
	DB      *gorm.DB
	Horizon int
}

func (s *Service) horizon() int {
	if s.Horizon > 0 {
		return s.Horizon
	}
	return 12
}

// CreateLeaseInput carries validated lease terms. StartDate must already be
// normalized to 12:00 UTC (validation.ParseISODate).
type CreateLeaseInput struct {
	UnitID     uuid.UUID
	TenantID   uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
	RentAmount int64
	Currency   string
	PaymentDay int
}

// CreateLease validates unit and tenant within the caller's organization,
// enforces the one-ACTIVE-lease-per-unit invariant, and creates the lease
// with its full installment schedule in a single transaction. Partial
// schedules are never observable.
func (s *Service) CreateLease(ctx context.Context, orgID uuid.UUID, in CreateLeaseInput) (*domain.Lease, error) {
	if in.RentAmount <= 0 {
		return nil, ErrInvalidRentAmount
	}

	// Unit must belong to the org via its property.
	var unit domain.Unit
	if err := s.DB.WithContext(ctx).
		Joins("JOIN \"Properties\" ON \"Properties\".property_id = \"Units\".property_id").
		Where("\"Units\".unit_id = ? AND \"Properties\".org_id = ? AND \"Properties\".deleted_at IS NULL", in.UnitID, orgID).
		First(&unit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	var tenant domain.Tenant
	if err := s.DB.WithContext(ctx).Where("tenant_id = ? AND org_id = ?", in.TenantID, orgID).First(&tenant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	var active domain.Lease
	err := s.DB.WithContext(ctx).
		Where("unit_id = ? AND org_id = ? AND status = ?", in.UnitID, orgID, domain.LeaseActive).
		First(&active).Error
	if err == nil {
		return nil, ErrUnitHasActiveLease
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = "MAD"
	}
	paymentDay := in.PaymentDay
	if paymentDay < 1 {
		paymentDay = 1
	}
	if paymentDay > 28 {
		paymentDay = 28
	}

	lease := &domain.Lease{
		OrgID:      orgID,
		UnitID:     in.UnitID,
		TenantID:   in.TenantID,
		Status:     domain.LeaseActive,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		RentAmount: in.RentAmount,
		Currency:   currency,
		PaymentDay: paymentDay,
	}

	schedule := BuildSchedule(in.StartDate, paymentDay, in.RentAmount, s.horizon())

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lease).Error; err != nil {
			return err
		}
		installments := make([]domain.RentInstallment, 0, len(schedule))
		for _, sc := range schedule {
			installments = append(installments, domain.RentInstallment{
				LeaseID: lease.LeaseID,
				Period:  sc.Period,
				DueDate: sc.DueDate,
				Amount:  sc.Amount,
				Status:  domain.InstallmentUnpaid,
			})
		}
		return tx.Create(&installments).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetLease(ctx, orgID, lease.LeaseID)
}

// ListLeases returns the org's leases with unit/property, tenant and ordered
// installments.
func (s *Service) ListLeases(ctx context.Context, orgID uuid.UUID) ([]domain.Lease, error) {
	var list []domain.Lease
	if err := s.DB.WithContext(ctx).
		Where("org_id = ?", orgID).
		Preload("Unit").
		Preload("Unit.Property").
		Preload("Tenant").
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("due_date ASC") }).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetLease returns one lease with relations, scoped to the organization.
func (s *Service) GetLease(ctx context.Context, orgID, leaseID uuid.UUID) (*domain.Lease, error) {
	var lease domain.Lease
	if err := s.DB.WithContext(ctx).
		Where("lease_id = ? AND org_id = ?", leaseID, orgID).
		Preload("Unit").
		Preload("Unit.Property").
		Preload("Tenant").
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("due_date ASC") }).
		First(&lease).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrLeaseNotFound
		}
		return nil, err
	}
	return &lease, nil
}
