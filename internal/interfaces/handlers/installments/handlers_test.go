package installments

import (
	"net/http/httptest"
	"testing"
	"time"

	instsvc "github.com/khawli/akar/internal/application/installments"
	"github.com/khawli/akar/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPayTest(t *testing.T) (*fiber.App, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Organization{}, &domain.Property{}, &domain.Unit{}, &domain.Tenant{},
		&domain.Lease{}, &domain.RentInstallment{},
	))

	org := domain.Organization{Name: "Test Org"}
	require.NoError(t, db.Create(&org).Error)
	property := domain.Property{OrgID: org.OrgID, Label: "Imm. A", Country: "MA"}
	require.NoError(t, db.Create(&property).Error)
	unit := domain.Unit{PropertyID: property.PropertyID, Label: "Apt 2"}
	require.NoError(t, db.Create(&unit).Error)
	tenant := domain.Tenant{OrgID: org.OrgID, FullName: "Hamid Senhaji"}
	require.NoError(t, db.Create(&tenant).Error)
	lease := domain.Lease{
		OrgID: org.OrgID, UnitID: unit.UnitID, TenantID: tenant.TenantID,
		Status: domain.LeaseActive, StartDate: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC),
		RentAmount: 100000, Currency: "MAD", PaymentDay: 1,
	}
	require.NoError(t, db.Create(&lease).Error)
	inst := domain.RentInstallment{
		LeaseID: lease.LeaseID, Period: "2026-01",
		DueDate: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC),
		Amount:  100000, Status: domain.InstallmentUnpaid,
	}
	require.NoError(t, db.Create(&inst).Error)

	h := &Handlers{Service: &instsvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"email":   "owner@akar.ma",
			"org_id":  org.OrgID.String(),
		})
		return c.Next()
	})
	app.Post("/api/v1/installments/:id/pay", h.Pay)
	return app, inst.InstallmentID
}

func TestPay_FirstCallSucceedsSecondConflicts(t *testing.T) {
	app, instID := setupPayTest(t)

	req := httptest.NewRequest("POST", "/api/v1/installments/"+instID.String()+"/pay", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/v1/installments/"+instID.String()+"/pay", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestPay_UnknownInstallmentReturns404(t *testing.T) {
	app, _ := setupPayTest(t)

	req := httptest.NewRequest("POST", "/api/v1/installments/"+uuid.New().String()+"/pay", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPay_MalformedIDReturns400(t *testing.T) {
	app, _ := setupPayTest(t)

	req := httptest.NewRequest("POST", "/api/v1/installments/not-a-uuid/pay", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
