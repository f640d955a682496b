package documents

import "errors"

var (
	ErrInstallmentNotFound = errors.New("Installment not found")
	ErrDocumentNotFound    = errors.New("Document not found")
	ErrFileMissing         = errors.New("Document file is missing from storage")
	ErrNotUnpaid           = errors.New("Installment is not unpaid")
	ErrNotPaid             = errors.New("Installment is not paid")
	ErrUnknownType         = errors.New("Unknown document type")
	ErrRenderFailed        = errors.New("Document rendering failed")
)
