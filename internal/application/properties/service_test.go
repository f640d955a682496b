package properties

import (
	"context"
	"testing"

	"github.com/khawli/akar/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPropertyDB(t *testing.T) (*gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Organization{}, &domain.Property{}, &domain.Unit{}))
	org := domain.Organization{Name: "Gérance Nord"}
	require.NoError(t, db.Create(&org).Error)
	return db, org.OrgID
}

func TestCreateProperty_DefaultsCountry(t *testing.T) {
	db, orgID := setupPropertyDB(t)
	svc := &Service{DB: db}

	property, err := svc.CreateProperty(context.Background(), orgID, CreatePropertyInput{Label: "  Résidence Yasmine  "})
	require.NoError(t, err)
	assert.Equal(t, "Résidence Yasmine", property.Label)
	assert.Equal(t, "MA", property.Country)
}

func TestCreateProperty_RejectsShortLabel(t *testing.T) {
	db, orgID := setupPropertyDB(t)
	svc := &Service{DB: db}

	_, err := svc.CreateProperty(context.Background(), orgID, CreatePropertyInput{Label: "A"})
	require.Error(t, err)
	assert.Equal(t, ErrLabelRequired, err)
}

func TestDeleteProperty_CascadesUnits(t *testing.T) {
	db, orgID := setupPropertyDB(t)
	svc := &Service{DB: db}

	property, err := svc.CreateProperty(context.Background(), orgID, CreatePropertyInput{Label: "Immeuble Atlas"})
	require.NoError(t, err)
	for _, label := range []string{"Apt 1", "Apt 2"} {
		_, err := svc.CreateUnit(context.Background(), orgID, property.PropertyID, CreateUnitInput{Label: label})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteProperty(context.Background(), orgID, property.PropertyID))

	_, err = svc.GetProperty(context.Background(), orgID, property.PropertyID)
	assert.Equal(t, ErrPropertyNotFound, err)
	var count int64
	require.NoError(t, db.Model(&domain.Unit{}).Where("property_id = ?", property.PropertyID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteProperty_CrossOrgBehavesAsMissing(t *testing.T) {
	db, orgID := setupPropertyDB(t)
	svc := &Service{DB: db}

	property, err := svc.CreateProperty(context.Background(), orgID, CreatePropertyInput{Label: "Villa Majorelle"})
	require.NoError(t, err)

	err = svc.DeleteProperty(context.Background(), uuid.New(), property.PropertyID)
	assert.Equal(t, ErrPropertyNotFound, err)

	// Still intact for its owner.
	_, err = svc.GetProperty(context.Background(), orgID, property.PropertyID)
	require.NoError(t, err)
}

func TestCreateUnit_UnknownPropertyInOrg(t *testing.T) {
	db, orgID := setupPropertyDB(t)
	svc := &Service{DB: db}

	_, err := svc.CreateUnit(context.Background(), orgID, uuid.New(), CreateUnitInput{Label: "Apt 3"})
	assert.Equal(t, ErrPropertyNotFound, err)
}

func TestListProperties_ScopedToOrg(t *testing.T) {
	db, orgID := setupPropertyDB(t)
	svc := &Service{DB: db}

	other := domain.Organization{Name: "Autre agence"}
	require.NoError(t, db.Create(&other).Error)
	_, err := svc.CreateProperty(context.Background(), orgID, CreatePropertyInput{Label: "Immeuble Badr"})
	require.NoError(t, err)
	_, err = svc.CreateProperty(context.Background(), other.OrgID, CreatePropertyInput{Label: "Immeuble Salam"})
	require.NoError(t, err)

	mine, err := svc.ListProperties(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Immeuble Badr", mine[0].Label)
}
