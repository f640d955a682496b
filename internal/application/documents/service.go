package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Type-specific grace period defaults (days).
const (
	defaultNoticeGraceDays   = 8
	defaultReminderGraceDays = 5
)

// Service generates legal documents and serves their retrieval. The catalog
// row is only written after the artifact write succeeds, so a rendering or
// storage failure never leaves a row pointing at a missing file.
type Service struct {
	DB       *gorm.DB
	Store    *Store
	Renderer Renderer
}

// GenerateInput carries the operator-supplied parameters for generation.
// GraceDays applies to NOTICE/REMINDER only and must be validated to [1,60]
// by the caller; nil selects the type default. ActorEmail is the landlord
// name fallback when the organization has no profile.
type GenerateInput struct {
	InstallmentID uuid.UUID
	GraceDays     *int
	ActorEmail    string
}

// GenerateResult is the stable retrieval handle returned to callers. The raw
// artifact path stays an implementation detail.
type GenerateResult struct {
	DownloadURL string
	Document    *domain.Document
	Reused      bool
}

type payloadSnapshot struct {
	DocumentNo    string `json:"documentNo"`
	InstallmentID string `json:"installmentId"`
	LeaseID       string `json:"leaseId"`
	GraceDays     int    `json:"graceDays,omitempty"`
}

// Generate runs the shared protocol for all three document types: deep
// scoped read, state gate, find-or-create idempotence with repair, render,
// persist artifact, upsert catalog row.
func (s *Service) Generate(ctx context.Context, orgID uuid.UUID, docType string, in GenerateInput) (*GenerateResult, error) {
	if docType != domain.DocNotice && docType != domain.DocReminder && docType != domain.DocReceipt {
		return nil, ErrUnknownType
	}

	inst, err := s.resolveDeep(ctx, orgID, in.InstallmentID)
	if err != nil {
		return nil, err
	}

	// State gate: notices and reminders address unpaid rent; receipts
	// acknowledge payment.
	switch docType {
	case domain.DocNotice, domain.DocReminder:
		if inst.Status != domain.InstallmentUnpaid {
			return nil, ErrNotUnpaid
		}
	case domain.DocReceipt:
		if inst.Status != domain.InstallmentPaid || inst.PaidAt == nil {
			return nil, ErrNotPaid
		}
	}

	// Idempotence: at most one artifact per (installment, type). These carry
	// legal meaning and must not be silently replaced once issued. A row
	// whose artifact vanished is repaired in place.
	existing, err := s.findExisting(ctx, orgID, inst.InstallmentID, docType)
	if err != nil {
		return nil, err
	}
	if existing != nil && s.Store.Exists(existing.StoragePath) {
		return s.handle(existing, true), nil
	}

	var org domain.Organization
	if err := s.DB.WithContext(ctx).Where("org_id = ?", orgID).First(&org).Error; err != nil {
		return nil, err
	}
	profile := org.Profile()
	landlordName := profile.Name
	if landlordName == "" {
		landlordName = in.ActorEmail
	}

	number := Number(docType, inst.Period, inst.InstallmentID)
	issuedAt := ymd(time.Now().UTC())
	graceDays := graceOrDefault(docType, in.GraceDays)

	html, err := s.renderHTML(docType, inst, number, issuedAt, graceDays, landlordName, profile)
	if err != nil {
		return nil, err
	}

	pdf, err := s.Renderer.Render(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	// Artifact first, catalog second.
	storagePath, err := s.Store.Write(number+".pdf", pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	snapshot := payloadSnapshot{
		DocumentNo:    number,
		InstallmentID: inst.InstallmentID.String(),
		LeaseID:       inst.LeaseID.String(),
	}
	if docType != domain.DocReceipt {
		snapshot.GraceDays = graceDays
	}
	payloadBytes, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// Repair path: keep the row identity, refresh everything else.
		updates := map[string]interface{}{
			"version":      domain.DocVersion,
			"payload":      datatypes.JSON(payloadBytes),
			"storage_path": storagePath,
			"lease_id":     inst.LeaseID,
		}
		if err := s.DB.WithContext(ctx).Model(&domain.Document{}).
			Where("document_id = ?", existing.DocumentID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
		existing.Version = domain.DocVersion
		existing.Payload = datatypes.JSON(payloadBytes)
		existing.StoragePath = storagePath
		return s.handle(existing, false), nil
	}

	leaseID := inst.LeaseID
	installmentID := inst.InstallmentID
	doc := &domain.Document{
		OrgID:         orgID,
		LeaseID:       &leaseID,
		InstallmentID: &installmentID,
		Type:          docType,
		Version:       domain.DocVersion,
		Payload:       datatypes.JSON(payloadBytes),
		StoragePath:   storagePath,
	}
	if err := s.DB.WithContext(ctx).Create(doc).Error; err != nil {
		// The unique index on (org, installment, type) turns a concurrent
		// duplicate into a constraint violation; fall back to the row the
		// winner created.
		winner, ferr := s.findExisting(ctx, orgID, inst.InstallmentID, docType)
		if ferr == nil && winner != nil {
			return s.handle(winner, true), nil
		}
		return nil, err
	}

	return s.handle(doc, false), nil
}

// ListByInstallment returns catalog rows for one installment.
func (s *Service) ListByInstallment(ctx context.Context, orgID, installmentID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	if err := s.DB.WithContext(ctx).
		Where("org_id = ? AND installment_id = ?", orgID, installmentID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Download resolves a document for retrieval, verifying artifact presence at
// read time. A catalog row whose blob vanished reports ErrFileMissing,
// distinct from ErrDocumentNotFound.
func (s *Service) Download(ctx context.Context, orgID, documentID uuid.UUID) (*domain.Document, string, error) {
	var doc domain.Document
	if err := s.DB.WithContext(ctx).
		Where("document_id = ? AND org_id = ?", documentID, orgID).
		First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", ErrDocumentNotFound
		}
		return nil, "", err
	}
	if doc.StoragePath == "" {
		return nil, "", ErrDocumentNotFound
	}
	if !s.Store.Exists(doc.StoragePath) {
		return nil, "", ErrFileMissing
	}
	return &doc, doc.StoragePath, nil
}

func (s *Service) resolveDeep(ctx context.Context, orgID, installmentID uuid.UUID) (*domain.RentInstallment, error) {
	var inst domain.RentInstallment
	if err := s.DB.WithContext(ctx).
		Joins("JOIN \"Leases\" ON \"Leases\".lease_id = \"RentInstallments\".lease_id").
		Where("\"RentInstallments\".installment_id = ? AND \"Leases\".org_id = ?", installmentID, orgID).
		Preload("Lease").
		Preload("Lease.Tenant").
		Preload("Lease.Unit").
		Preload("Lease.Unit.Property").
		First(&inst).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInstallmentNotFound
		}
		return nil, err
	}
	return &inst, nil
}

func (s *Service) findExisting(ctx context.Context, orgID, installmentID uuid.UUID, docType string) (*domain.Document, error) {
	var doc domain.Document
	err := s.DB.WithContext(ctx).
		Where("org_id = ? AND installment_id = ? AND type = ?", orgID, installmentID, docType).
		First(&doc).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Service) renderHTML(docType string, inst *domain.RentInstallment, number, issuedAt string, graceDays int, landlordName string, profile domain.LandlordProfileData) (string, error) {
	tenant := inst.Lease.Tenant
	property := inst.Lease.Unit.Property

	tenantAddress := ""
	if tenant.Address != nil {
		tenantAddress = *tenant.Address
	}

	switch docType {
	case domain.DocNotice:
		return renderNoticeHTML(NoticeData{
			NoticeNo:        number,
			IssuedAt:        issuedAt,
			Deadline:        addDaysYMD(issuedAt, graceDays),
			LandlordName:    landlordName,
			LandlordAddress: profile.Address,
			TenantName:      tenant.FullName,
			TenantAddress:   tenantAddress,
			PropertyLabel:   property.Label,
			UnitLabel:       inst.Lease.Unit.Label,
			Period:          inst.Period,
			DueDate:         ymd(inst.DueDate),
			Amount:          inst.Amount,
			Currency:        inst.Lease.Currency,
			GraceDays:       graceDays,
		})
	case domain.DocReminder:
		return renderReminderHTML(ReminderData{
			ReminderNo:      number,
			IssuedAt:        issuedAt,
			LandlordName:    landlordName,
			LandlordAddress: profile.Address,
			TenantName:      tenant.FullName,
			TenantAddress:   tenantAddress,
			PropertyLabel:   property.Label,
			UnitLabel:       inst.Lease.Unit.Label,
			Period:          inst.Period,
			DueDate:         ymd(inst.DueDate),
			Amount:          inst.Amount,
			Currency:        inst.Lease.Currency,
			GraceDays:       graceDays,
		})
	default:
		return renderReceiptHTML(ReceiptData{
			ReceiptNo:        number,
			IssuedAt:         issuedAt,
			LandlordName:     landlordName,
			LandlordAddress:  profile.Address,
			LandlordIDNumber: profile.IDNumber,
			TenantName:       tenant.FullName,
			PropertyLabel:    property.Label,
			UnitLabel:        inst.Lease.Unit.Label,
			Period:           inst.Period,
			Amount:           inst.Amount,
			Currency:         inst.Lease.Currency,
			PaidAt:           ymd(*inst.PaidAt),
		})
	}
}

func (s *Service) handle(doc *domain.Document, reused bool) *GenerateResult {
	return &GenerateResult{
		DownloadURL: fmt.Sprintf("/api/v1/documents/%s/download", doc.DocumentID),
		Document:    doc,
		Reused:      reused,
	}
}

func graceOrDefault(docType string, graceDays *int) int {
	if graceDays != nil {
		return *graceDays
	}
	if docType == domain.DocReminder {
		return defaultReminderGraceDays
	}
	return defaultNoticeGraceDays
}

func ymd(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// addDaysYMD adds days to a YYYY-MM-DD date at noon UTC and reformats.
func addDaysYMD(date string, days int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}
