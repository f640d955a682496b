package exports

import (
	"context"
	"fmt"
	"io"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service assembles dossier archives. All reads happen up front so callers
// can still answer 404 with a plain error body; only once the data is loaded
// does the zip start streaming.
type Service struct {
	DB *gorm.DB
}

// LeaseArchive loads one lease dossier and returns the archive name plus a
// stream of its zip bytes. The stream is produced lazily; closing it before
// the end aborts the producer.
func (s *Service) LeaseArchive(ctx context.Context, orgID, leaseID uuid.UUID) (string, io.ReadCloser, error) {
	var lease domain.Lease
	err := s.DB.WithContext(ctx).
		Where("lease_id = ? AND org_id = ?", leaseID, orgID).
		Preload("Tenant").
		Preload("Unit").
		Preload("Unit.Property").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		First(&lease).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, ErrLeaseNotFound
		}
		return "", nil, err
	}

	docs, err := s.leaseDocuments(ctx, orgID, []uuid.UUID{leaseID})
	if err != nil {
		return "", nil, err
	}

	name := fmt.Sprintf("dossier-%s-%s-%s.zip",
		sanitize(lease.Unit.Property.Label+"-"+lease.Unit.Label),
		sanitize(lease.Tenant.FullName),
		shortID(lease.LeaseID))

	pr, pw := io.Pipe()
	go func() {
		err := writeLeaseArchive(pw, &lease, docs, true)
		if err != nil {
			log.Error().Err(err).Str("lease_id", lease.LeaseID.String()).Msg("lease export aborted")
		}
		pw.CloseWithError(err)
	}()
	return name, pr, nil
}

// PropertyArchive bundles every lease of a property, each under its own
// subfolder. A property without leases yields a valid empty archive.
func (s *Service) PropertyArchive(ctx context.Context, orgID, propertyID uuid.UUID) (string, io.ReadCloser, error) {
	var property domain.Property
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND org_id = ?", propertyID, orgID).
		First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, ErrPropertyNotFound
		}
		return "", nil, err
	}

	var leases []domain.Lease
	err = s.DB.WithContext(ctx).
		Joins("JOIN \"Units\" ON \"Units\".unit_id = \"Leases\".unit_id").
		Where("\"Leases\".org_id = ? AND \"Units\".property_id = ?", orgID, propertyID).
		Preload("Tenant").
		Preload("Unit").
		Preload("Unit.Property").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		Order("\"Leases\".created_at ASC").
		Find(&leases).Error
	if err != nil {
		return "", nil, err
	}

	leaseIDs := make([]uuid.UUID, 0, len(leases))
	for _, l := range leases {
		leaseIDs = append(leaseIDs, l.LeaseID)
	}
	docs, err := s.leaseDocuments(ctx, orgID, leaseIDs)
	if err != nil {
		return "", nil, err
	}
	docsByLease := make(map[uuid.UUID][]domain.Document)
	for _, d := range docs {
		if d.LeaseID == nil {
			continue
		}
		docsByLease[*d.LeaseID] = append(docsByLease[*d.LeaseID], d)
	}

	name := fmt.Sprintf("property-%s-%s.zip", sanitize(property.Label), shortID(property.PropertyID))

	pr, pw := io.Pipe()
	go func() {
		err := writePropertyArchive(pw, leases, docsByLease)
		if err != nil {
			log.Error().Err(err).Str("property_id", property.PropertyID.String()).Msg("property export aborted")
		}
		pw.CloseWithError(err)
	}()
	return name, pr, nil
}

func (s *Service) leaseDocuments(ctx context.Context, orgID uuid.UUID, leaseIDs []uuid.UUID) ([]domain.Document, error) {
	if len(leaseIDs) == 0 {
		return nil, nil
	}
	var docs []domain.Document
	err := s.DB.WithContext(ctx).
		Where("org_id = ? AND lease_id IN ?", orgID, leaseIDs).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
