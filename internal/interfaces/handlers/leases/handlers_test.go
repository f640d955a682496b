package leases

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/khawli/akar/internal/application/exports"
	leasesvc "github.com/khawli/akar/internal/application/leases"
	"github.com/khawli/akar/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type leaseTestEnv struct {
	app      *fiber.App
	db       *gorm.DB
	orgID    uuid.UUID
	unitID   uuid.UUID
	tenantID uuid.UUID
}

func setupLeaseHandlers(t *testing.T) leaseTestEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Organization{}, &domain.Property{}, &domain.Unit{}, &domain.Tenant{},
		&domain.Lease{}, &domain.RentInstallment{}, &domain.Document{},
	))

	org := domain.Organization{Name: "Test Org"}
	require.NoError(t, db.Create(&org).Error)
	property := domain.Property{OrgID: org.OrgID, Label: "Imm. Centre", Country: "MA"}
	require.NoError(t, db.Create(&property).Error)
	unit := domain.Unit{PropertyID: property.PropertyID, Label: "Apt 1"}
	require.NoError(t, db.Create(&unit).Error)
	tenant := domain.Tenant{OrgID: org.OrgID, FullName: "Nadia Tazi"}
	require.NoError(t, db.Create(&tenant).Error)

	h := &Handlers{
		Service: &leasesvc.Service{DB: db, Horizon: 12},
		Exports: &exports.Service{DB: db},
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
	app.Post("/api/v1/leases", h.Create)
	app.Get("/api/v1/leases/:id", h.Get)
	app.Get("/api/v1/leases/:id/export", h.Export)

	return leaseTestEnv{app: app, db: db, orgID: org.OrgID, unitID: unit.UnitID, tenantID: tenant.TenantID}
}

func (env leaseTestEnv) createLease(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/leases", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	out["__status"] = resp.StatusCode
	return out
}

func TestCreateLease_Returns201WithSchedule(t *testing.T) {
	env := setupLeaseHandlers(t)
	out := env.createLease(t, map[string]interface{}{
		"unit_id":     env.unitID.String(),
		"tenant_id":   env.tenantID.String(),
		"start_date":  "2026-01-15",
		"rent_amount": 350000,
		"payment_day": 31,
	})
	require.Equal(t, fiber.StatusCreated, out["__status"])

	data := out["data"].(map[string]interface{})
	installments := data["installments"].([]interface{})
	assert.Len(t, installments, 12)
	first := installments[0].(map[string]interface{})
	assert.Equal(t, "2026-01", first["period"])
	assert.Equal(t, "UNPAID", first["status"])
}

func TestCreateLease_InvalidDateReturns400(t *testing.T) {
	env := setupLeaseHandlers(t)
	out := env.createLease(t, map[string]interface{}{
		"unit_id":     env.unitID.String(),
		"tenant_id":   env.tenantID.String(),
		"start_date":  "15/01/2026",
		"rent_amount": 350000,
		"payment_day": 5,
	})
	assert.Equal(t, fiber.StatusBadRequest, out["__status"])
}

func TestCreateLease_UnknownUnitReturns404(t *testing.T) {
	env := setupLeaseHandlers(t)
	out := env.createLease(t, map[string]interface{}{
		"unit_id":     uuid.New().String(),
		"tenant_id":   env.tenantID.String(),
		"start_date":  "2026-01-15",
		"rent_amount": 350000,
		"payment_day": 5,
	})
	require.Equal(t, fiber.StatusNotFound, out["__status"])
	errObj := out["error"].(map[string]interface{})
	assert.Equal(t, "UNIT_NOT_FOUND", errObj["code"])
}

func TestCreateLease_ActiveLeaseConflictReturns409(t *testing.T) {
	env := setupLeaseHandlers(t)
	body := map[string]interface{}{
		"unit_id":     env.unitID.String(),
		"tenant_id":   env.tenantID.String(),
		"start_date":  "2026-01-15",
		"rent_amount": 350000,
		"payment_day": 5,
	}
	out := env.createLease(t, body)
	require.Equal(t, fiber.StatusCreated, out["__status"])

	out = env.createLease(t, body)
	require.Equal(t, fiber.StatusConflict, out["__status"])
	errObj := out["error"].(map[string]interface{})
	assert.Equal(t, "UNIT_ALREADY_HAS_ACTIVE_LEASE", errObj["code"])
}

func TestGetLease_UnknownReturns404(t *testing.T) {
	env := setupLeaseHandlers(t)
	req := httptest.NewRequest("GET", "/api/v1/leases/"+uuid.New().String(), nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestExportLease_ReturnsZip(t *testing.T) {
	env := setupLeaseHandlers(t)
	out := env.createLease(t, map[string]interface{}{
		"unit_id":     env.unitID.String(),
		"tenant_id":   env.tenantID.String(),
		"start_date":  "2026-01-15",
		"rent_amount": 350000,
		"payment_day": 5,
	})
	require.Equal(t, fiber.StatusCreated, out["__status"])
	leaseID := out["data"].(map[string]interface{})["lease_id"].(string)

	req := httptest.NewRequest("GET", "/api/v1/leases/"+leaseID+"/export", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "dossier-")
}

func TestExportLease_UnknownReturns404(t *testing.T) {
	env := setupLeaseHandlers(t)
	req := httptest.NewRequest("GET", "/api/v1/leases/"+uuid.New().String()+"/export", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
