package installments

import (
	"context"
	"errors"
	"time"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInstallmentNotFound = errors.New("Installment not found")
	ErrAlreadyPaid         = errors.New("Installment is already paid")
)

// Service governs the installment payment lifecycle: UNPAID → PAID, with
// PAID terminal. No reversal operation is exposed.
type Service struct {
	DB *gorm.DB
}

// Resolve loads an installment within the caller's organization, traversing
// Lease → org. Cross-tenant ids resolve to not-found.
func (s *Service) Resolve(ctx context.Context, orgID, installmentID uuid.UUID) (*domain.RentInstallment, error) {
	var inst domain.RentInstallment
	if err := s.DB.WithContext(ctx).
		Joins("JOIN \"Leases\" ON \"Leases\".lease_id = \"RentInstallments\".lease_id").
		Where("\"RentInstallments\".installment_id = ? AND \"Leases\".org_id = ?", installmentID, orgID).
		First(&inst).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInstallmentNotFound
		}
		return nil, err
	}
	return &inst, nil
}

// MarkPaid applies the guarded UNPAID → PAID transition and stamps paidAt.
// Re-marking a PAID installment is rejected: receipts snapshot paidAt, so a
// silent reset could contradict an already-issued document.
func (s *Service) MarkPaid(ctx context.Context, orgID, installmentID uuid.UUID) (*domain.RentInstallment, error) {
	inst, err := s.Resolve(ctx, orgID, installmentID)
	if err != nil {
		return nil, err
	}
	if inst.Status == domain.InstallmentPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).Model(&domain.RentInstallment{}).
		Where("installment_id = ?", inst.InstallmentID).
		Updates(map[string]interface{}{
			"status":  domain.InstallmentPaid,
			"paid_at": now,
		}).Error; err != nil {
		return nil, err
	}

	inst.Status = domain.InstallmentPaid
	inst.PaidAt = &now
	return inst, nil
}
