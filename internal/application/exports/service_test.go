package exports

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khawli/akar/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type exportFixture struct {
	db         *gorm.DB
	svc        *Service
	orgID      uuid.UUID
	propertyID uuid.UUID
	leaseID    uuid.UUID
	instID     uuid.UUID
}

func setupExportTest(t *testing.T) exportFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Organization{}, &domain.Property{}, &domain.Unit{}, &domain.Tenant{},
		&domain.Lease{}, &domain.RentInstallment{}, &domain.Document{},
	))

	org := domain.Organization{Name: "Immo Nord"}
	require.NoError(t, db.Create(&org).Error)
	property := domain.Property{OrgID: org.OrgID, Label: "Résidence Al Fath", Country: "MA"}
	require.NoError(t, db.Create(&property).Error)
	unit := domain.Unit{PropertyID: property.PropertyID, Label: "Apt 7"}
	require.NoError(t, db.Create(&unit).Error)
	tenant := domain.Tenant{OrgID: org.OrgID, FullName: "Karim El Fassi"}
	require.NoError(t, db.Create(&tenant).Error)
	lease := domain.Lease{
		OrgID: org.OrgID, UnitID: unit.UnitID, TenantID: tenant.TenantID,
		Status: domain.LeaseActive, StartDate: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC),
		RentAmount: 300000, Currency: "MAD", PaymentDay: 3,
	}
	require.NoError(t, db.Create(&lease).Error)
	inst := domain.RentInstallment{
		LeaseID: lease.LeaseID, Period: "2026-01",
		DueDate: time.Date(2026, time.January, 3, 12, 0, 0, 0, time.UTC),
		Amount:  300000, Status: domain.InstallmentUnpaid,
	}
	require.NoError(t, db.Create(&inst).Error)

	return exportFixture{
		db: db, svc: &Service{DB: db},
		orgID: org.OrgID, propertyID: property.PropertyID,
		leaseID: lease.LeaseID, instID: inst.InstallmentID,
	}
}

func (fx exportFixture) addDocument(t *testing.T, dir, docType string, withFile bool) domain.Document {
	t.Helper()
	storagePath := ""
	if withFile {
		storagePath = filepath.Join(dir, docType+"-"+uuid.NewString()+".pdf")
		require.NoError(t, os.WriteFile(storagePath, []byte("%PDF-1.4 test"), 0o644))
	} else {
		// Row points at a path that no longer exists on disk.
		storagePath = filepath.Join(dir, "gone.pdf")
	}
	leaseID := fx.leaseID
	instID := fx.instID
	doc := domain.Document{
		OrgID: fx.orgID, LeaseID: &leaseID, InstallmentID: &instID,
		Type: docType, Version: domain.DocVersion, StoragePath: storagePath,
	}
	require.NoError(t, fx.db.Create(&doc).Error)
	return doc
}

func readArchive(t *testing.T, stream io.ReadCloser) *zip.Reader {
	t.Helper()
	defer stream.Close()
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return zr
}

func archiveFile(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return data
		}
	}
	t.Fatalf("entry %q not in archive", name)
	return nil
}

func TestLeaseArchive_ContainsDossier(t *testing.T) {
	fx := setupExportTest(t)
	doc := fx.addDocument(t, t.TempDir(), domain.DocNotice, true)

	name, stream, err := fx.svc.LeaseArchive(context.Background(), fx.orgID, fx.leaseID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "dossier-"), name)
	assert.True(t, strings.HasSuffix(name, ".zip"), name)

	zr := readArchive(t, stream)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(archiveFile(t, zr, "lease.json"), &payload))
	leaseObj := payload["lease"].(map[string]interface{})
	assert.Equal(t, fx.leaseID.String(), leaseObj["id"])
	assert.Equal(t, float64(300000), leaseObj["rentAmount"])
	installments := payload["installments"].([]interface{})
	assert.Len(t, installments, 1)
	documents := payload["documents"].([]interface{})
	require.Len(t, documents, 1)
	assert.Equal(t, true, documents[0].(map[string]interface{})["hasFile"])

	index := string(archiveFile(t, zr, "index.html"))
	assert.Contains(t, index, "Karim El Fassi")
	assert.Contains(t, index, "NOTICE")

	pdfName := "documents/NOTICE-" + strings.ToLower(doc.DocumentID.String()[len(doc.DocumentID.String())-6:]) + ".pdf"
	assert.Equal(t, []byte("%PDF-1.4 test"), archiveFile(t, zr, pdfName))
}

func TestLeaseArchive_MissingArtifactSkipped(t *testing.T) {
	fx := setupExportTest(t)
	fx.addDocument(t, t.TempDir(), domain.DocReminder, false)

	_, stream, err := fx.svc.LeaseArchive(context.Background(), fx.orgID, fx.leaseID)
	require.NoError(t, err)
	zr := readArchive(t, stream)

	for _, f := range zr.File {
		assert.False(t, strings.HasPrefix(f.Name, "documents/"), "missing artifact must not yield an entry: %s", f.Name)
	}

	// Still cataloged in lease.json.
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(archiveFile(t, zr, "lease.json"), &payload))
	documents := payload["documents"].([]interface{})
	assert.Len(t, documents, 1)

	index := string(archiveFile(t, zr, "index.html"))
	assert.NotContains(t, index, "REMINDER-")
}

func TestLeaseArchive_ProducerFailureAbortsStream(t *testing.T) {
	fx := setupExportTest(t)
	fx.addDocument(t, t.TempDir(), domain.DocNotice, true)

	orig := openArtifact
	openArtifact = func(string) (io.ReadCloser, error) { return nil, errors.New("storage offline") }
	t.Cleanup(func() { openArtifact = orig })

	_, stream, err := fx.svc.LeaseArchive(context.Background(), fx.orgID, fx.leaseID)
	require.NoError(t, err)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.Error(t, err)

	// The bytes received before the failure must not decode as a complete
	// archive: no central directory is ever written.
	_, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestLeaseArchive_DirectoryArtifactTreatedAsMissing(t *testing.T) {
	fx := setupExportTest(t)
	leaseID := fx.leaseID
	instID := fx.instID
	doc := domain.Document{
		OrgID: fx.orgID, LeaseID: &leaseID, InstallmentID: &instID,
		Type: domain.DocReceipt, Version: domain.DocVersion, StoragePath: t.TempDir(),
	}
	require.NoError(t, fx.db.Create(&doc).Error)

	_, stream, err := fx.svc.LeaseArchive(context.Background(), fx.orgID, fx.leaseID)
	require.NoError(t, err)
	zr := readArchive(t, stream)

	for _, f := range zr.File {
		assert.False(t, strings.HasPrefix(f.Name, "documents/"), "directory-valued path must not yield an entry: %s", f.Name)
	}
	index := string(archiveFile(t, zr, "index.html"))
	assert.NotContains(t, index, "RECEIPT-")
}

func TestLeaseArchive_NoDocuments(t *testing.T) {
	fx := setupExportTest(t)

	_, stream, err := fx.svc.LeaseArchive(context.Background(), fx.orgID, fx.leaseID)
	require.NoError(t, err)
	zr := readArchive(t, stream)

	index := string(archiveFile(t, zr, "index.html"))
	assert.Contains(t, index, "Aucun document PDF disponible")
}

func TestLeaseArchive_NotFound(t *testing.T) {
	fx := setupExportTest(t)

	_, _, err := fx.svc.LeaseArchive(context.Background(), fx.orgID, uuid.New())
	assert.Equal(t, ErrLeaseNotFound, err)

	_, _, err = fx.svc.LeaseArchive(context.Background(), uuid.New(), fx.leaseID)
	assert.Equal(t, ErrLeaseNotFound, err)
}

func TestPropertyArchive_PerLeaseFolders(t *testing.T) {
	fx := setupExportTest(t)
	fx.addDocument(t, t.TempDir(), domain.DocNotice, true)

	name, stream, err := fx.svc.PropertyArchive(context.Background(), fx.orgID, fx.propertyID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "property-"), name)

	zr := readArchive(t, stream)
	short := fx.leaseID.String()[len(fx.leaseID.String())-6:]
	folder := "leases/" + sanitize("Apt 7-Karim El Fassi") + "-" + short

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(archiveFile(t, zr, folder+"/lease.json"), &payload))
	assert.NotContains(t, payload, "documents")

	index := string(archiveFile(t, zr, folder+"/index.html"))
	assert.Contains(t, index, "NOTICE")
}

func TestPropertyArchive_EmptyPropertyYieldsValidZip(t *testing.T) {
	fx := setupExportTest(t)
	empty := domain.Property{OrgID: fx.orgID, Label: "Terrain Vide", Country: "MA"}
	require.NoError(t, fx.db.Create(&empty).Error)

	_, stream, err := fx.svc.PropertyArchive(context.Background(), fx.orgID, empty.PropertyID)
	require.NoError(t, err)
	zr := readArchive(t, stream)
	assert.Empty(t, zr.File)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Apt_7-Karim_El_Fassi", sanitize("Apt 7-Karim El Fassi"))
	assert.Equal(t, "R_sidence_Al_Fath", sanitize("Résidence Al Fath"))
	assert.Len(t, sanitize(strings.Repeat("a", 200)), 80)
	assert.Equal(t, "a_b", sanitize("  a//\\b  "))
}
