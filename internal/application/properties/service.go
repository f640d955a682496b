package properties

import (
	"context"
	"errors"
	"strings"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound = errors.New("Property not found")
	ErrLabelRequired    = errors.New("label is required")
)

// Service encapsulates property and unit operations. Every query filters by
// org_id before any id lookup so a guessed id from another organization
// behaves exactly like a missing one.
type Service struct {
	DB *gorm.DB
}

type CreatePropertyInput struct {
	Label       string  `json:"label"`
	AddressLine *string `json:"address_line"`
	City        *string `json:"city"`
	Country     string  `json:"country"`
	Notes       *string `json:"notes"`
}

func (s *Service) CreateProperty(ctx context.Context, orgID uuid.UUID, in CreatePropertyInput) (*domain.Property, error) {
	label := strings.TrimSpace(in.Label)
	if len(label) < 2 {
		return nil, ErrLabelRequired
	}
	country := strings.ToUpper(strings.TrimSpace(in.Country))
	if country == "" {
		country = "MA"
	}
	property := &domain.Property{
		OrgID:       orgID,
		Label:       label,
		AddressLine: in.AddressLine,
		City:        in.City,
		Country:     country,
		Notes:       in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

func (s *Service) ListProperties(ctx context.Context, orgID uuid.UUID) ([]domain.Property, error) {
	var properties []domain.Property
	if err := s.DB.WithContext(ctx).
		Where("org_id = ?", orgID).
		Preload("Units").
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *Service) GetProperty(ctx context.Context, orgID, propertyID uuid.UUID) (*domain.Property, error) {
	var property domain.Property
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND org_id = ?", propertyID, orgID).
		Preload("Units").
		First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (s *Service) UpdateProperty(ctx context.Context, orgID, propertyID uuid.UUID, fields map[string]interface{}) (*domain.Property, error) {
	allowed := map[string]bool{
		"label":        true,
		"address_line": true,
		"city":         true,
		"country":      true,
		"notes":        true,
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

	result := s.DB.WithContext(ctx).Model(&domain.Property{}).
		Where("property_id = ? AND org_id = ?", propertyID, orgID).
		Updates(valid)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPropertyNotFound
	}
	return s.GetProperty(ctx, orgID, propertyID)
}

// DeleteProperty removes the property and cascades to its units.
func (s *Service) DeleteProperty(ctx context.Context, orgID, propertyID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property domain.Property
		if err := tx.Where("property_id = ? AND org_id = ?", propertyID, orgID).First(&property).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPropertyNotFound
			}
			return err
		}
		if err := tx.Where("property_id = ?", propertyID).Delete(&domain.Unit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
}

type CreateUnitInput struct {
	Label    string   `json:"label"`
	UnitType *string  `json:"unit_type"`
	Surface  *float64 `json:"surface"`
}

// CreateUnit adds a unit to a property owned by the caller's organization.
func (s *Service) CreateUnit(ctx context.Context, orgID, propertyID uuid.UUID, in CreateUnitInput) (*domain.Unit, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, ErrLabelRequired
	}
	var property domain.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ? AND org_id = ?", propertyID, orgID).First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	unit := &domain.Unit{
		PropertyID: propertyID,
		Label:      label,
		UnitType:   in.UnitType,
		Surface:    in.Surface,
	}
	if err := s.DB.WithContext(ctx).Create(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *Service) ListUnits(ctx context.Context, orgID, propertyID uuid.UUID) ([]domain.Unit, error) {
	var property domain.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ? AND org_id = ?", propertyID, orgID).First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	var units []domain.Unit
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).Order("created_at ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
