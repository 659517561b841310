// Package table maps entity kinds onto concrete spreadsheet tabs and
// converts between sheet rows (sequences of strings) and typed records.
package table

import (
	"fmt"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// Kind identifies a logical entity table.
type Kind string

const (
	// KindProject is the Projects tab.
	KindProject Kind = "project"
	// KindLead is the Leads tab.
	KindLead Kind = "lead"
	// KindTemplate is the Templates tab.
	KindTemplate Kind = "template"
	// KindCampaignStat is the CampaignStats tab.
	KindCampaignStat Kind = "campaign_stat"
)

// Schema describes one tab: its name, the header column order and which
// column holds the row key. Key values are expected to be unique per tab;
// out-of-band edits can break that, in which case the physically first
// matching row is authoritative.
type Schema struct {
	Tab    string
	Header []string
	KeyCol int
}

// Width returns the number of mapped columns.
func (s Schema) Width() int { return len(s.Header) }

var schemas = map[Kind]Schema{
	KindProject: {
		Tab: "Projects",
		Header: []string{
			"project_id", "name", "niche", "target_leads", "campaign_type",
			"status", "current_step", "completed_steps", "created_at",
		},
		KeyCol: 0,
	},
	KindLead: {
		Tab: "Leads",
		Header: []string{
			"lead_id", "project_id", "name", "email", "company", "position",
			"source", "status", "phone", "website", "address", "rating",
			"scraped_at", "error",
			"validation_status", "validation_score", "validation_reason",
			"deliverable", "validated_at",
		},
		KeyCol: 0,
	},
	KindTemplate: {
		Tab: "Templates",
		Header: []string{
			"template_id", "project_id", "subject", "body", "attachments",
			"variant", "updated_at",
		},
		KeyCol: 0,
	},
	KindCampaignStat: {
		Tab: "CampaignStats",
		Header: []string{
			"campaign_id", "project_id", "total", "delivered", "opened",
			"clicked", "bounced", "window_start", "window_end", "updated_at",
		},
		KeyCol: 0,
	},
}

// For returns the schema for an entity kind. Unknown kinds panic: the kind
// set is fixed at compile time and a miss is a programming error.
func For(kind Kind) Schema {
	s, ok := schemas[kind]
	if !ok {
		panic(fmt.Sprintf("table: unknown kind %q", kind))
	}
	return s
}

// CheckHeader verifies that the sheet's header row still starts with the
// mapped columns. Operator-added columns beyond the schema are allowed;
// renamed or reordered mapped columns are not, because writes would then
// land in the wrong cells.
func CheckHeader(s Schema, header []string) error {
	if len(header) < len(s.Header) {
		return fmt.Errorf("%w: %s header has %d columns, want at least %d",
			domain.ErrMalformed, s.Tab, len(header), len(s.Header))
	}
	for i, name := range s.Header {
		if header[i] != name {
			return fmt.Errorf("%w: %s column %d is %q, want %q",
				domain.ErrMalformed, s.Tab, i, header[i], name)
		}
	}
	return nil
}

// RowRange builds the A1 range of a single data row. rowNum is the 1-based
// sheet row number (the header is row 1, the first data row is 2) and width
// is the number of cells being written, which may exceed the schema width
// when preserved operator columns are carried along.
func RowRange(s Schema, rowNum, width int) string {
	return fmt.Sprintf("%s!A%d:%s%d", s.Tab, rowNum, ColumnLetter(width), rowNum)
}

// SpanRange builds the A1 range covering rows rowNum through rowNum+count-1.
func SpanRange(s Schema, rowNum, count, width int) string {
	return fmt.Sprintf("%s!A%d:%s%d", s.Tab, rowNum, ColumnLetter(width), rowNum+count-1)
}

// ColumnLetter converts a 1-based column number to its A1 letter ("A", "Z",
// "AA", ...).
func ColumnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}
