package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// TestDecodeLead_ShortRow tests that trailing optional columns absent from
// the API response decode as empty rather than erroring. The sheet omits
// cells that were never written.
func TestDecodeLead_ShortRow(t *testing.T) {
	row := []string{"l-1", "p-1", "Ada", "ada@example.com"}

	l := DecodeLead(row)

	assert.Equal(t, "l-1", l.ID)
	assert.Equal(t, "ada@example.com", l.Email)
	assert.Empty(t, l.Phone)
	assert.Empty(t, l.Validation.Status)
}

// TestEncodeLead_FullWidth tests that encoding always produces a full
// schema-width row so column alignment survives the write.
func TestEncodeLead_FullWidth(t *testing.T) {
	row := EncodeLead(domain.Lead{ID: "l-1"})

	require.Len(t, row, For(KindLead).Width())
	assert.Equal(t, "l-1", row[0])
}

// TestLead_RoundTrip tests decode-encode identity on a canonical row.
func TestLead_RoundTrip(t *testing.T) {
	row := []string{
		"l-1", "p-1", "Ada Lovelace", "ada@example.com", "Analytical Engines",
		"CTO", "Manual Entry", "Active", "+44 20 1234", "https://example.com",
		"1 Example St", "4.5", "2026-08-01T10:00:00Z", "",
		"valid", "0.97", "mx ok", "true", "2026-08-02T09:00:00Z",
	}

	assert.Equal(t, row, EncodeLead(DecodeLead(row)))
}

// TestProject_RoundTrip tests decode-encode identity on a canonical row,
// including numeric columns.
func TestProject_RoundTrip(t *testing.T) {
	row := []string{
		"p-1", "Dental Q3", "dentists", "250", "cold-email",
		"active", "3", "2", "2026-07-15T08:00:00Z",
	}

	p := DecodeProject(row)

	assert.Equal(t, 250, p.TargetLeads)
	assert.Equal(t, 3, p.CurrentStep)
	assert.Equal(t, row, EncodeProject(p))
}

// TestDecodeProject_EmptyNumerics tests that blank numeric cells decode to
// zero.
func TestDecodeProject_EmptyNumerics(t *testing.T) {
	p := DecodeProject([]string{"p-1", "Bare"})

	assert.Zero(t, p.TargetLeads)
	assert.Zero(t, p.CurrentStep)
	assert.Zero(t, p.CompletedSteps)
}

// TestTemplate_RoundTrip tests decode-encode identity.
func TestTemplate_RoundTrip(t *testing.T) {
	row := []string{
		"t-1", "p-1", "Quick question", "Hi {{name}},", "", "initial",
		"2026-08-10T12:00:00Z",
	}

	assert.Equal(t, row, EncodeTemplate(DecodeTemplate(row)))
}

// TestCampaignStat_RoundTrip tests decode-encode identity with counters.
func TestCampaignStat_RoundTrip(t *testing.T) {
	row := []string{
		"c-1", "p-1", "100", "80", "40", "10", "5",
		"2026-08-01T00:00:00Z", "2026-08-07T00:00:00Z", "2026-08-07T01:00:00Z",
	}

	s := DecodeCampaignStat(row)

	assert.Equal(t, 100, s.Total)
	assert.Equal(t, 80, s.Delivered)
	assert.Equal(t, row, EncodeCampaignStat(s))
}
