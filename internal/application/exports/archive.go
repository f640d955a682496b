package exports

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// sanitize produces a filesystem-safe archive name segment, capped at 80
// characters.
func sanitize(s string) string {
	out := unsafeChars.ReplaceAllString(strings.TrimSpace(s), "_")
	if len(out) > 80 {
		out = out[:80]
	}
	return out
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-6:]
}

type leasePayload struct {
	ExportedAt   string               `json:"exportedAt"`
	Lease        leaseSummary         `json:"lease"`
	Property     labelOnly            `json:"property"`
	Unit         labelOnly            `json:"unit"`
	Tenant       tenantSummary        `json:"tenant"`
	Installments []installmentSummary `json:"installments"`
	Documents    []documentSummary    `json:"documents,omitempty"`
}

type leaseSummary struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"startDate"`
	RentAmount int64     `json:"rentAmount"`
	Currency   string    `json:"currency"`
	PaymentDay int       `json:"paymentDay"`
}

type labelOnly struct {
	Label string `json:"label"`
}

type tenantSummary struct {
	FullName string  `json:"fullName"`
	Address  *string `json:"address"`
}

type installmentSummary struct {
	ID      string     `json:"id"`
	Period  string     `json:"period"`
	DueDate time.Time  `json:"dueDate"`
	Amount  int64      `json:"amount"`
	Status  string     `json:"status"`
	PaidAt  *time.Time `json:"paidAt"`
}

type documentSummary struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	HasFile   bool      `json:"hasFile"`
}

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Dossier</title></head>
<body style="font-family:Arial,sans-serif;padding:24px">
  <h2>Dossier location</h2>
  <p><b>Bien:</b> {{.PropertyLabel}} — {{.UnitLabel}}</p>
  <p><b>Locataire:</b> {{.TenantName}}</p>
  <hr/>
  <h3>Documents</h3>
  <ul>
  {{- if .Docs}}
  {{- range .Docs}}
    <li><b>{{.Type}}</b> — <a href="documents/{{.FileName}}">{{.FileName}}</a></li>
  {{- end}}
  {{- else}}
    <li>Aucun document PDF disponible</li>
  {{- end}}
  </ul>
</body>
</html>
`))

type indexDoc struct {
	Type     string
	FileName string
}

type indexData struct {
	PropertyLabel string
	UnitLabel     string
	TenantName    string
	Docs          []indexDoc
}

// writeLeaseDossier writes one dossier (lease.json, index.html, documents/)
// into zw entries rooted at folder. Catalog rows whose artifact is missing
// from disk appear in lease.json with hasFile but get no file entry and no
// index link.
func writeLeaseDossier(zw *zip.Writer, folder string, lease *domain.Lease, docs []domain.Document, includeDocList bool) error {
	payload := leasePayload{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Lease: leaseSummary{
			ID:         lease.LeaseID.String(),
			Status:     lease.Status,
			StartDate:  lease.StartDate,
			RentAmount: lease.RentAmount,
			Currency:   lease.Currency,
			PaymentDay: lease.PaymentDay,
		},
		Property: labelOnly{Label: lease.Unit.Property.Label},
		Unit:     labelOnly{Label: lease.Unit.Label},
		Tenant:   tenantSummary{FullName: lease.Tenant.FullName, Address: lease.Tenant.Address},
	}
	for _, i := range lease.Installments {
		payload.Installments = append(payload.Installments, installmentSummary{
			ID:      i.InstallmentID.String(),
			Period:  i.Period,
			DueDate: i.DueDate,
			Amount:  i.Amount,
			Status:  i.Status,
			PaidAt:  i.PaidAt,
		})
	}
	if includeDocList {
		for _, d := range docs {
			payload.Documents = append(payload.Documents, documentSummary{
				ID:        d.DocumentID.String(),
				Type:      d.Type,
				CreatedAt: d.CreatedAt,
				HasFile:   d.StoragePath != "",
			})
		}
	}

	jsonBytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if err := writeEntry(zw, path(folder, "lease.json"), jsonBytes); err != nil {
		return err
	}

	available := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if d.StoragePath == "" {
			continue
		}
		info, err := os.Stat(d.StoragePath)
		if err != nil || info.IsDir() {
			continue
		}
		available = append(available, d)
	}

	idx := indexData{
		PropertyLabel: lease.Unit.Property.Label,
		UnitLabel:     lease.Unit.Label,
		TenantName:    lease.Tenant.FullName,
	}
	for _, d := range available {
		idx.Docs = append(idx.Docs, indexDoc{Type: d.Type, FileName: docFileName(d)})
	}
	var sb strings.Builder
	if err := indexTmpl.Execute(&sb, idx); err != nil {
		return err
	}
	if err := writeEntry(zw, path(folder, "index.html"), []byte(sb.String())); err != nil {
		return err
	}

	for _, d := range available {
		w, err := zw.Create(path(folder, "documents/"+docFileName(d)))
		if err != nil {
			return err
		}
		f, err := openArtifact(d.StoragePath)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// openArtifact is swapped in tests to simulate storage failures.
var openArtifact = func(name string) (io.ReadCloser, error) { return os.Open(name) }

// On failure the zip writer is left unterminated: closing it would emit a
// central directory and make the truncated stream parse as a complete
// archive.

func writeLeaseArchive(w io.Writer, lease *domain.Lease, docs []domain.Document, includeDocList bool) error {
	zw := zip.NewWriter(w)
	if err := writeLeaseDossier(zw, "", lease, docs, includeDocList); err != nil {
		return err
	}
	return zw.Close()
}

func writePropertyArchive(w io.Writer, leases []domain.Lease, docsByLease map[uuid.UUID][]domain.Document) error {
	zw := zip.NewWriter(w)
	for i := range leases {
		lease := &leases[i]
		folder := fmt.Sprintf("leases/%s-%s",
			sanitize(lease.Unit.Label+"-"+lease.Tenant.FullName),
			shortID(lease.LeaseID))
		if err := writeLeaseDossier(zw, folder, lease, docsByLease[lease.LeaseID], false); err != nil {
			return err
		}
	}
	return zw.Close()
}

func docFileName(d domain.Document) string {
	return fmt.Sprintf("%s-%s.pdf", d.Type, shortID(d.DocumentID))
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func path(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
