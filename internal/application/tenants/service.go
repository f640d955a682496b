package tenants

import (
	"context"
	"errors"
	"strings"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTenantNotFound   = errors.New("Tenant not found")
	ErrFullNameRequired = errors.New("full_name is required")
)

// Service encapsulates tenant operations, all org-scoped.
type Service struct {
	DB *gorm.DB
}

type CreateTenantInput struct {
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IDNumber *string `json:"id_number"`
}

func (s *Service) CreateTenant(ctx context.Context, orgID uuid.UUID, in CreateTenantInput) (*domain.Tenant, error) {
	fullName := strings.TrimSpace(in.FullName)
	if len(fullName) < 2 {
		return nil, ErrFullNameRequired
	}
	tenant := &domain.Tenant{
		OrgID:    orgID,
		FullName: fullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		IDNumber: in.IDNumber,
	}
	if err := s.DB.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *Service) ListTenants(ctx context.Context, orgID uuid.UUID) ([]domain.Tenant, error) {
	var list []domain.Tenant
	if err := s.DB.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) GetTenant(ctx context.Context, orgID, tenantID uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := s.DB.WithContext(ctx).Where("tenant_id = ? AND org_id = ?", tenantID, orgID).First(&tenant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (s *Service) UpdateTenant(ctx context.Context, orgID, tenantID uuid.UUID, fields map[string]interface{}) (*domain.Tenant, error) {
	allowed := map[string]bool{
		"full_name": true,
		"email":     true,
		"phone":     true,
		"address":   true,
		"id_number": true,
	}
	valid := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			valid[k] = v
		}
	}
	if len(valid) == 0 {
		return nil, errors.New("No valid fields to update")
	}

	result := s.DB.WithContext(ctx).Model(&domain.Tenant{}).
		Where("tenant_id = ? AND org_id = ?", tenantID, orgID).
		Updates(valid)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTenantNotFound
	}
	return s.GetTenant(ctx, orgID, tenantID)
}

func (s *Service) DeleteTenant(ctx context.Context, orgID, tenantID uuid.UUID) error {
	result := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND org_id = ?", tenantID, orgID).
		Delete(&domain.Tenant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}
