package installments

import (
	"context"
	"testing"
	"time"

	"github.com/khawli/akar/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInstallmentDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Organization{}, &domain.Property{}, &domain.Unit{}, &domain.Tenant{},
		&domain.Lease{}, &domain.RentInstallment{},
	))
	return db
}

func seedInstallment(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	org := domain.Organization{Name: "Gérance Sud"}
	require.NoError(t, db.Create(&org).Error)
	property := domain.Property{OrgID: org.OrgID, Label: "Villa Anfa", Country: "MA"}
	require.NoError(t, db.Create(&property).Error)
	unit := domain.Unit{PropertyID: property.PropertyID, Label: "RDC"}
	require.NoError(t, db.Create(&unit).Error)
	tenant := domain.Tenant{OrgID: org.OrgID, FullName: "Imane Berrada"}
	require.NoError(t, db.Create(&tenant).Error)
	lease := domain.Lease{
		OrgID: org.OrgID, UnitID: unit.UnitID, TenantID: tenant.TenantID,
		Status: domain.LeaseActive, StartDate: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC),
		RentAmount: 150000, Currency: "MAD", PaymentDay: 5,
	}
	require.NoError(t, db.Create(&lease).Error)
	inst := domain.RentInstallment{
		LeaseID: lease.LeaseID, Period: "2026-01",
		DueDate: time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC),
		Amount:  150000, Status: domain.InstallmentUnpaid,
	}
	require.NoError(t, db.Create(&inst).Error)
	return org.OrgID, inst.InstallmentID
}

func TestMarkPaid_TransitionsAndStampsPaidAt(t *testing.T) {
	db := setupInstallmentDB(t)
	orgID, instID := seedInstallment(t, db)
	svc := &Service{DB: db}

	inst, err := svc.MarkPaid(context.Background(), orgID, instID)
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentPaid, inst.Status)
	require.NotNil(t, inst.PaidAt)

	var stored domain.RentInstallment
	require.NoError(t, db.First(&stored, "installment_id = ?", instID).Error)
	assert.Equal(t, domain.InstallmentPaid, stored.Status)
	require.NotNil(t, stored.PaidAt)
}

func TestMarkPaid_SecondCallConflicts(t *testing.T) {
	db := setupInstallmentDB(t)
	orgID, instID := seedInstallment(t, db)
	svc := &Service{DB: db}

	first, err := svc.MarkPaid(context.Background(), orgID, instID)
	require.NoError(t, err)
	paidAt := *first.PaidAt

	_, err = svc.MarkPaid(context.Background(), orgID, instID)
	require.Error(t, err)
	assert.Equal(t, ErrAlreadyPaid, err)

	// The original paidAt is untouched.
	var stored domain.RentInstallment
	require.NoError(t, db.First(&stored, "installment_id = ?", instID).Error)
	require.NotNil(t, stored.PaidAt)
	assert.WithinDuration(t, paidAt, *stored.PaidAt, time.Second)
}

func TestMarkPaid_CrossOrgBehavesAsMissing(t *testing.T) {
	db := setupInstallmentDB(t)
	_, instID := seedInstallment(t, db)
	svc := &Service{DB: db}

	_, err := svc.MarkPaid(context.Background(), uuid.New(), instID)
	require.Error(t, err)
	assert.Equal(t, ErrInstallmentNotFound, err)
}
