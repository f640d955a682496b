package documents

import (
	"fmt"
	"strings"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
)

// numberPrefix returns the type prefix of a document number (mise en
// demeure, relance, quittance).
func numberPrefix(docType string) string {
	switch docType {
	case domain.DocNotice:
		return "MD"
	case domain.DocReminder:
		return "RL"
	case domain.DocReceipt:
		return "RC"
	}
	return "DOC"
}

// Number derives the stable document number for an installment and type:
// {PREFIX}-{periodDigits}-{last6OfInstallmentID, uppercased}. Deterministic
// given the same installment and type, so it can be re-derived for
// cross-referencing.
func Number(docType, period string, installmentID uuid.UUID) string {
	digits := strings.ReplaceAll(period, "-", "")
	return fmt.Sprintf("%s-%s-%s", numberPrefix(docType), digits, shortID(installmentID.String()))
}

// shortID returns the last six characters of an id, uppercased.
func shortID(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}
