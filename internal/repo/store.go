package repo

import (
	"context"
	"time"

	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/sheets"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// Store bundles the per-entity repositories over one range client. A store
// lives for a single request: it is built from the credential that request
// carried and holds no cache of table contents.
type Store struct {
	Projects  *Projects
	Leads     *Leads
	Templates *Templates
	Stats     *Stats

	client RangeClient
}

// NewStore builds a store over an existing range client.
func NewStore(client RangeClient) *Store {
	return newStore(client, time.Now)
}

func newStore(client RangeClient, now func() time.Time) *Store {
	return &Store{
		Projects:  newProjects(client, now),
		Leads:     newLeads(client, now),
		Templates: newTemplates(client, now),
		Stats:     newStats(client, now),
		client:    client,
	}
}

// Open builds a store talking to the configured spreadsheet with the carried
// credential.
func Open(ctx context.Context, cred domain.Credential, spreadsheetID string, opts ...sheets.Option) (*Store, error) {
	client, err := sheets.NewClient(ctx, cred, spreadsheetID, opts...)
	if err != nil {
		return nil, err
	}
	return NewStore(client), nil
}

// Snapshot is a consistent-enough read of every tab, fetched in one batch
// round trip. It backs the cross-entity aggregate views.
type Snapshot struct {
	Projects  []domain.Project
	Leads     []domain.Lead
	Templates []domain.EmailTemplate
	Stats     []domain.CampaignStat
}

// Snapshot reads all four tabs with a single batch-get. If any tab fails its
// header check the whole snapshot fails: a partially populated aggregate that
// looks complete is worse than an error.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	kinds := []table.Kind{table.KindProject, table.KindLead, table.KindTemplate, table.KindCampaignStat}
	rngs := make([]string, len(kinds))
	for i, kind := range kinds {
		rngs[i] = table.For(kind).Tab
	}

	tabs, err := s.client.BatchRead(ctx, rngs)
	if err != nil {
		return nil, domain.WrapOp("snapshot", "", "batch_read", err)
	}
	if len(tabs) != len(kinds) {
		return nil, domain.WrapOp("snapshot", "", "batch_read", domain.ErrMalformed)
	}

	snap := &Snapshot{}
	for i, kind := range kinds {
		schema := table.For(kind)
		rows := tabs[i]
		if len(rows) == 0 {
			return nil, domain.WrapOp(schema.Tab, "", "batch_read", domain.ErrMalformed)
		}
		if err := table.CheckHeader(schema, rows[0]); err != nil {
			return nil, domain.WrapOp(schema.Tab, "", "batch_read", err)
		}
		data := rows[1:]

		switch kind {
		case table.KindProject:
			for _, row := range data {
				snap.Projects = append(snap.Projects, table.DecodeProject(row))
			}
		case table.KindLead:
			for _, row := range data {
				snap.Leads = append(snap.Leads, table.DecodeLead(row))
			}
		case table.KindTemplate:
			for _, row := range data {
				snap.Templates = append(snap.Templates, table.DecodeTemplate(row))
			}
		case table.KindCampaignStat:
			for _, row := range data {
				snap.Stats = append(snap.Stats, table.DecodeCampaignStat(row))
			}
		}
	}
	return snap, nil
}
