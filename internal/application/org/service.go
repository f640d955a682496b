package org

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrOrgNotFound = errors.New("Organization not found")

// Service encapsulates organization settings (landlord profile).
type Service struct {
	DB *gorm.DB
}

// GetProfile returns the landlord profile stamped on generated documents.
func (s *Service) GetProfile(ctx context.Context, orgID uuid.UUID) (*domain.LandlordProfileData, error) {
	var org domain.Organization
	if err := s.DB.WithContext(ctx).Where("org_id = ?", orgID).First(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	p := org.Profile()
	return &p, nil
}

// UpdateProfile replaces the landlord profile.
func (s *Service) UpdateProfile(ctx context.Context, orgID uuid.UUID, profile domain.LandlordProfileData) (*domain.LandlordProfileData, error) {
	b, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	result := s.DB.WithContext(ctx).Model(&domain.Organization{}).
		Where("org_id = ?", orgID).
		Update("landlord_profile", datatypes.JSON(b))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrgNotFound
	}
	return &profile, nil
}
