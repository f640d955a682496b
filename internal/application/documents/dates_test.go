package documents

import (
	"testing"

	"github.com/khawli/akar/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAddDaysYMD(t *testing.T) {
	assert.Equal(t, "2026-03-09", addDaysYMD("2026-03-01", 8))
	assert.Equal(t, "2026-03-02", addDaysYMD("2026-02-25", 5))
	assert.Equal(t, "2027-01-03", addDaysYMD("2026-12-28", 6))
}

func TestGraceOrDefault(t *testing.T) {
	five := 5
	assert.Equal(t, 5, graceOrDefault(domain.DocNotice, &five))
	assert.Equal(t, 8, graceOrDefault(domain.DocNotice, nil))
	assert.Equal(t, 5, graceOrDefault(domain.DocReminder, nil))
}
