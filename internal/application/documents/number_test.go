package documents

import (
	"testing"

	"github.com/khawli/akar/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_PrefixPerType(t *testing.T) {
	id := uuid.MustParse("2b43c0fa-9f7d-4d3e-bb0a-5a1f37abc123")

	assert.Equal(t, "MD-202603-ABC123", Number(domain.DocNotice, "2026-03", id))
	assert.Equal(t, "RL-202603-ABC123", Number(domain.DocReminder, "2026-03", id))
	assert.Equal(t, "RC-202603-ABC123", Number(domain.DocReceipt, "2026-03", id))
}

func TestNumber_Deterministic(t *testing.T) {
	id := uuid.New()
	first := Number(domain.DocNotice, "2026-11", id)
	second := Number(domain.DocNotice, "2026-11", id)
	require.Equal(t, first, second)
}

func TestShortID_UppercasesLastSix(t *testing.T) {
	assert.Equal(t, "ABC123", shortID("2b43c0fa-9f7d-4d3e-bb0a-5a1f37abc123"))
	assert.Equal(t, "AB", shortID("ab"))
}
