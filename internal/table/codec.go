package table

import (
	"strconv"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// Decoders tolerate short rows: trailing optional columns that were never
// written come back absent from the API, and absent means empty, not error.
// Encoders always emit the full schema-width row so column alignment is
// preserved on write. Cells beyond the schema width are not the codec's
// business; the repository carries them over verbatim on update.

// cell returns row[i] or "" when the row is shorter.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// intCell parses row[i] as an integer, treating empty and absent as zero.
func intCell(row []string, i int) int {
	n, _ := strconv.Atoi(cell(row, i))
	return n
}

// DecodeProject converts a Projects row into a Project.
func DecodeProject(row []string) domain.Project {
	return domain.Project{
		ID:             cell(row, 0),
		Name:           cell(row, 1),
		Niche:          cell(row, 2),
		TargetLeads:    intCell(row, 3),
		CampaignType:   cell(row, 4),
		Status:         cell(row, 5),
		CurrentStep:    intCell(row, 6),
		CompletedSteps: intCell(row, 7),
		CreatedAt:      cell(row, 8),
	}
}

// EncodeProject converts a Project into a full-width Projects row.
func EncodeProject(p domain.Project) []string {
	return []string{
		p.ID,
		p.Name,
		p.Niche,
		strconv.Itoa(p.TargetLeads),
		p.CampaignType,
		p.Status,
		strconv.Itoa(p.CurrentStep),
		strconv.Itoa(p.CompletedSteps),
		p.CreatedAt,
	}
}

// DecodeLead converts a Leads row into a Lead.
func DecodeLead(row []string) domain.Lead {
	return domain.Lead{
		ID:        cell(row, 0),
		ProjectID: cell(row, 1),
		Name:      cell(row, 2),
		Email:     cell(row, 3),
		Company:   cell(row, 4),
		Position:  cell(row, 5),
		Source:    cell(row, 6),
		Status:    cell(row, 7),
		Phone:     cell(row, 8),
		Website:   cell(row, 9),
		Address:   cell(row, 10),
		Rating:    cell(row, 11),
		ScrapedAt: cell(row, 12),
		Error:     cell(row, 13),
		Validation: domain.LeadValidation{
			Status:      cell(row, 14),
			Score:       cell(row, 15),
			Reason:      cell(row, 16),
			Deliverable: cell(row, 17),
			ValidatedAt: cell(row, 18),
		},
	}
}

// EncodeLead converts a Lead into a full-width Leads row.
func EncodeLead(l domain.Lead) []string {
	return []string{
		l.ID,
		l.ProjectID,
		l.Name,
		l.Email,
		l.Company,
		l.Position,
		l.Source,
		l.Status,
		l.Phone,
		l.Website,
		l.Address,
		l.Rating,
		l.ScrapedAt,
		l.Error,
		l.Validation.Status,
		l.Validation.Score,
		l.Validation.Reason,
		l.Validation.Deliverable,
		l.Validation.ValidatedAt,
	}
}

// DecodeTemplate converts a Templates row into an EmailTemplate.
func DecodeTemplate(row []string) domain.EmailTemplate {
	return domain.EmailTemplate{
		ID:          cell(row, 0),
		ProjectID:   cell(row, 1),
		Subject:     cell(row, 2),
		Body:        cell(row, 3),
		Attachments: cell(row, 4),
		Variant:     cell(row, 5),
		UpdatedAt:   cell(row, 6),
	}
}

// EncodeTemplate converts an EmailTemplate into a full-width Templates row.
func EncodeTemplate(t domain.EmailTemplate) []string {
	return []string{
		t.ID,
		t.ProjectID,
		t.Subject,
		t.Body,
		t.Attachments,
		t.Variant,
		t.UpdatedAt,
	}
}

// DecodeCampaignStat converts a CampaignStats row into a CampaignStat.
func DecodeCampaignStat(row []string) domain.CampaignStat {
	return domain.CampaignStat{
		CampaignID:  cell(row, 0),
		ProjectID:   cell(row, 1),
		Total:       intCell(row, 2),
		Delivered:   intCell(row, 3),
		Opened:      intCell(row, 4),
		Clicked:     intCell(row, 5),
		Bounced:     intCell(row, 6),
		WindowStart: cell(row, 7),
		WindowEnd:   cell(row, 8),
		UpdatedAt:   cell(row, 9),
	}
}

// EncodeCampaignStat converts a CampaignStat into a full-width row.
func EncodeCampaignStat(s domain.CampaignStat) []string {
	return []string{
		s.CampaignID,
		s.ProjectID,
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Delivered),
		strconv.Itoa(s.Opened),
		strconv.Itoa(s.Clicked),
		strconv.Itoa(s.Bounced),
		s.WindowStart,
		s.WindowEnd,
		s.UpdatedAt,
	}
}
