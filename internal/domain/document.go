package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document types.
const (
	DocNotice   = "NOTICE"
	DocReminder = "REMINDER"
	DocReceipt  = "RECEIPT"
)

// DocVersion is the payload schema version stamped on every document.
const DocVersion = "1.0"

// Document is the catalog row for a generated legal/financial artifact.
// StoragePath is the sole pointer to the rendered file and is exclusively
// owned by this row. The unique index on (org_id, installment_id, type)
// backs idempotent generation: a concurrent duplicate insert fails the
// constraint and the caller falls back to the winner's row.
type Document struct {
	DocumentID    uuid.UUID      `gorm:"column:document_id;type:uuid;primaryKey" json:"document_id"`
	OrgID         uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index;uniqueIndex:idx_documents_org_installment_type" json:"org_id"`
	LeaseID       *uuid.UUID     `gorm:"column:lease_id;type:uuid;index" json:"lease_id"`
	InstallmentID *uuid.UUID     `gorm:"column:installment_id;type:uuid;uniqueIndex:idx_documents_org_installment_type" json:"installment_id"`
	Type          string         `gorm:"column:type;not null;uniqueIndex:idx_documents_org_installment_type" json:"type"`
	Version       string         `gorm:"column:version;not null;default:1.0" json:"version"`
	Payload       datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	StoragePath   string         `gorm:"column:storage_path;not null" json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (Document) TableName() string {
	return "Documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.DocumentID == uuid.Nil {
		d.DocumentID = uuid.New()
	}
	return nil
}
