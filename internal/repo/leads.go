package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// Leads is the repository for the Leads tab.
type Leads struct {
	t   tableRepo[domain.Lead]
	now func() time.Time
}

func newLeads(client RangeClient, now func() time.Time) *Leads {
	return &Leads{
		t: tableRepo[domain.Lead]{
			client: client,
			codec: codec[domain.Lead]{
				entity: "lead",
				schema: table.For(table.KindLead),
				decode: table.DecodeLead,
				encode: table.EncodeLead,
				key:    func(l domain.Lead) string { return l.ID },
			},
		},
		now: now,
	}
}

// Find returns the lead with the given id.
func (r *Leads) Find(ctx context.Context, id string) (domain.Lead, error) {
	return r.t.Find(ctx, id)
}

// List returns all leads in sheet order.
func (r *Leads) List(ctx context.Context) ([]domain.Lead, error) {
	return r.t.List(ctx, nil)
}

// ListByProject returns the leads belonging to one project, in sheet order.
func (r *Leads) ListByProject(ctx context.Context, projectID string) ([]domain.Lead, error) {
	return r.t.List(ctx, func(l domain.Lead) bool { return l.ProjectID == projectID })
}

// Insert appends a new lead row. This is the ingestion boundary: scraping
// and import collaborators post the fixed webhook field set, and absent
// optional fields default here, not at the transport layer.
func (r *Leads) Insert(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Source == "" {
		l.Source = domain.LeadSourceManual
	}
	if l.Status == "" {
		l.Status = domain.LeadStatusActive
	}
	if l.ScrapedAt == "" {
		l.ScrapedAt = r.now().UTC().Format(time.RFC3339)
	}
	return r.t.Insert(ctx, l)
}

// Update applies the patch to the stored lead and writes the row back. The
// validation pass uses this to fill the validation sub-record in place.
func (r *Leads) Update(ctx context.Context, id string, patch domain.LeadPatch) (domain.Lead, error) {
	return r.t.Update(ctx, id, func(l *domain.Lead) { patch.Apply(l) })
}

// Delete physically removes the lead row.
func (r *Leads) Delete(ctx context.Context, id string) error {
	return r.t.Delete(ctx, id)
}
