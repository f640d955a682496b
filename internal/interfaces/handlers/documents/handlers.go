package documents

import (
	"fmt"

	docsvc "github.com/khawli/akar/internal/application/documents"
	"github.com/khawli/akar/internal/domain"
	"github.com/khawli/akar/internal/middleware"
	"github.com/khawli/akar/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *docsvc.Service
}

type GenerateRequest struct {
	InstallmentID string `json:"installmentId"`
	GraceDays     *int   `json:"graceDays"`
}

// Notice POST /api/v1/documents/notice
func (h *Handlers) Notice(c *fiber.Ctx) error {
	return h.generate(c, domain.DocNotice)
}

// Reminder POST /api/v1/documents/reminder
func (h *Handlers) Reminder(c *fiber.Ctx) error {
	return h.generate(c, domain.DocReminder)
}

// Receipt POST /api/v1/documents/receipt
func (h *Handlers) Receipt(c *fiber.Ctx) error {
	return h.generate(c, domain.DocReceipt)
}

func (h *Handlers) generate(c *fiber.Ctx, docType string) error {
	actor := middleware.SessionActor(c)
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "VALIDATION", "Invalid request body", fiber.StatusBadRequest, nil)
	}
	installmentID, err := uuid.Parse(req.InstallmentID)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid installmentId", fiber.StatusBadRequest, nil)
	}
	if req.GraceDays != nil && (*req.GraceDays < 1 || *req.GraceDays > 60) {
		return response.Error(c, "VALIDATION", "graceDays must be between 1 and 60", fiber.StatusBadRequest, nil)
	}

	result, err := h.Service.Generate(c.Context(), actor.OrgID, docType, docsvc.GenerateInput{
		InstallmentID: installmentID,
		GraceDays:     req.GraceDays,
		ActorEmail:    actor.Email,
	})
	if err != nil {
		switch err {
		case docsvc.ErrInstallmentNotFound:
			return response.Error(c, "INSTALLMENT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		case docsvc.ErrNotUnpaid:
			return response.Error(c, "INSTALLMENT_NOT_UNPAID", err.Error(), fiber.StatusConflict, nil)
		case docsvc.ErrNotPaid:
			return response.Error(c, "INSTALLMENT_NOT_PAID", err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Document generation failed", fiber.StatusInternalServerError, nil)
		}
	}

	body := fiber.Map{
		"downloadUrl": result.DownloadURL,
		"document": fiber.Map{
			"document_id": result.Document.DocumentID,
			"type":        result.Document.Type,
		},
	}
	if result.Reused {
		return response.Success(c, "Document already issued", body, nil)
	}
	return response.SuccessCreated(c, "Document generated", body, nil)
}

// Download GET /api/v1/documents/:id/download — serve the PDF inline. A
// catalog row without its artifact on disk answers FILE_MISSING, not
// DOCUMENT_NOT_FOUND.
func (h *Handlers) Download(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid document id", fiber.StatusBadRequest, nil)
	}
	doc, storagePath, err := h.Service.Download(c.Context(), actor.OrgID, documentID)
	if err != nil {
		switch err {
		case docsvc.ErrDocumentNotFound:
			return response.Error(c, "DOCUMENT_NOT_FOUND", err.Error(), fiber.StatusNotFound, nil)
		case docsvc.ErrFileMissing:
			return response.Error(c, "FILE_MISSING", err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", fmt.Sprintf("%s-%s.pdf", doc.Type, doc.DocumentID)))
	c.Set(fiber.HeaderCacheControl, "private, max-age=0, no-store")
	return c.SendFile(storagePath)
}

// ListByInstallment GET /api/v1/documents/by-installment?installmentId=
func (h *Handlers) ListByInstallment(c *fiber.Ctx) error {
	actor := middleware.SessionActor(c)
	raw := c.Query("installmentId")
	if raw == "" {
		return response.Error(c, "MISSING_INSTALLMENT_ID", "installmentId query parameter is required", fiber.StatusBadRequest, nil)
	}
	installmentID, err := uuid.Parse(raw)
	if err != nil {
		return response.Error(c, "VALIDATION", "Invalid installment id", fiber.StatusBadRequest, nil)
	}
	docs, err := h.Service.ListByInstallment(c.Context(), actor.OrgID, installmentID)
	if err != nil {
		return response.Error(c, "SERVER_ERROR", "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Documents fetched", docs, nil)
}
