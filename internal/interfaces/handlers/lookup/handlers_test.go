package lookup

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	propsvc "github.com/khawli/akar/internal/application/properties"
	tenantsvc "github.com/khawli/akar/internal/application/tenants"
	"github.com/khawli/akar/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLookupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Organization{}, &domain.Property{}, &domain.Unit{}, &domain.Tenant{},
	))

	org := domain.Organization{Name: "Agence Atlas"}
	require.NoError(t, db.Create(&org).Error)
	other := domain.Organization{Name: "Autre agence"}
	require.NoError(t, db.Create(&other).Error)

	property := domain.Property{OrgID: org.OrgID, Label: "Résidence Zina", Country: "MA"}
	require.NoError(t, db.Create(&property).Error)
	unit := domain.Unit{PropertyID: property.PropertyID, Label: "Apt 1"}
	require.NoError(t, db.Create(&unit).Error)
	tenant := domain.Tenant{OrgID: org.OrgID, FullName: "Salma Idrissi"}
	require.NoError(t, db.Create(&tenant).Error)
	foreign := domain.Tenant{OrgID: other.OrgID, FullName: "Ailleurs"}
	require.NoError(t, db.Create(&foreign).Error)

	h := &Handlers{
		Properties: &propsvc.Service{DB: db},
		Tenants:    &tenantsvc.Service{DB: db},
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"email":   "owner@akar.ma",
			"org_id":  org.OrgID.String(),
		})
		return c.Next()
	})
	app.Get("/api/v1/lookup", h.Get)
	return app, db
}

func TestLookup_ReturnsOrgPropertiesAndTenants(t *testing.T) {
	app, _ := setupLookupTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/lookup", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	data := body["data"].(map[string]interface{})

	properties := data["properties"].([]interface{})
	require.Len(t, properties, 1)
	prop := properties[0].(map[string]interface{})
	assert.Equal(t, "Résidence Zina", prop["label"])
	units := prop["units"].([]interface{})
	require.Len(t, units, 1)

	tenants := data["tenants"].([]interface{})
	require.Len(t, tenants, 1)
	assert.Equal(t, "Salma Idrissi", tenants[0].(map[string]interface{})["full_name"])
}
