package repo

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// fakeSheet is an in-memory spreadsheet implementing RangeClient. It mimics
// the values API closely enough for repository semantics: reads omit trailing
// empty cells and rows, RAW writes touch only the supplied cells, appends
// land after the last data row.
type fakeSheet struct {
	tabs   map[string][][]string
	writes int
}

func newFakeSheet() *fakeSheet {
	f := &fakeSheet{tabs: map[string][][]string{}}
	for _, kind := range []table.Kind{
		table.KindProject, table.KindLead, table.KindTemplate, table.KindCampaignStat,
	} {
		s := table.For(kind)
		f.tabs[s.Tab] = [][]string{append([]string{}, s.Header...)}
	}
	return f
}

// tabOf splits "Tab!A2:K2" into the tab name and the 1-based start row.
// A bare tab name reads the whole tab from row 1.
func tabOf(rng string) (string, int) {
	tab, ref, ok := strings.Cut(rng, "!")
	if !ok {
		return rng, 1
	}
	start, _, _ := strings.Cut(ref, ":")
	row, _ := strconv.Atoi(strings.TrimLeft(start, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	return tab, row
}

func trimRow(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

func (f *fakeSheet) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	tab, _ := tabOf(rng)
	grid := f.tabs[tab]

	out := make([][]string, 0, len(grid))
	for _, row := range grid {
		out = append(out, trimRow(row))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeSheet) WriteRange(ctx context.Context, rng string, rows [][]string) error {
	f.writes++
	tab, start := tabOf(rng)
	grid := f.tabs[tab]

	for i, row := range rows {
		at := start - 1 + i
		for at >= len(grid) {
			grid = append(grid, nil)
		}
		cells := append([]string{}, grid[at]...)
		for j, cell := range row {
			for j >= len(cells) {
				cells = append(cells, "")
			}
			cells[j] = cell
		}
		grid[at] = cells
	}
	f.tabs[tab] = grid
	return nil
}

func (f *fakeSheet) AppendRow(ctx context.Context, tab string, row []string) error {
	name, _ := tabOf(tab)
	grid := f.tabs[name]
	for len(grid) > 0 && len(trimRow(grid[len(grid)-1])) == 0 {
		grid = grid[:len(grid)-1]
	}
	f.tabs[name] = append(grid, append([]string{}, row...))
	return nil
}

func (f *fakeSheet) BatchRead(ctx context.Context, rngs []string) ([][][]string, error) {
	out := make([][][]string, len(rngs))
	for i, rng := range rngs {
		rows, err := f.ReadRange(ctx, rng)
		if err != nil {
			return nil, err
		}
		out[i] = rows
	}
	return out, nil
}

var _ RangeClient = (*fakeSheet)(nil)

var fixedNow = func() time.Time {
	return time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
}

func testStore(f *fakeSheet) *Store {
	return newStore(f, fixedNow)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// TestProjects_Insert_Defaults tests that inserting a bare project generates
// an id, starts it as a draft and stamps creation time.
func TestProjects_Insert_Defaults(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	p, err := store.Projects.Insert(ctx, domain.Project{Name: "Dental Q3", Niche: "dentists"})

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.ProjectStatusDraft, p.Status)
	assert.Equal(t, "2026-08-15T10:00:00Z", p.CreatedAt)

	found, err := store.Projects.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, found)
}

// TestLeads_Insert_Defaults tests the webhook defaults: manual source, active
// status, stamped scrape time.
func TestLeads_Insert_Defaults(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	l, err := store.Leads.Insert(ctx, domain.Lead{ProjectID: "p-1", Name: "Ada", Email: "ada@example.com"})

	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, domain.LeadSourceManual, l.Source)
	assert.Equal(t, domain.LeadStatusActive, l.Status)
	assert.Equal(t, "2026-08-15T10:00:00Z", l.ScrapedAt)
}

// TestLeads_Insert_KeepsProvided tests that caller-supplied source and status
// are not overwritten by defaults.
func TestLeads_Insert_KeepsProvided(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	l, err := store.Leads.Insert(ctx, domain.Lead{
		ProjectID: "p-1", Name: "Ada", Source: "Maps Scrape", Status: "Bounced",
	})

	require.NoError(t, err)
	assert.Equal(t, "Maps Scrape", l.Source)
	assert.Equal(t, "Bounced", l.Status)
}

// TestFind_FirstMatchWins tests that with duplicate keys (possible after
// out-of-band edits) the physically first row is authoritative.
func TestFind_FirstMatchWins(t *testing.T) {
	ctx := context.Background()
	f := newFakeSheet()
	store := testStore(f)

	_, err := store.Projects.Insert(ctx, domain.Project{ID: "dup", Name: "first"})
	require.NoError(t, err)
	_, err = store.Projects.Insert(ctx, domain.Project{ID: "dup", Name: "second"})
	require.NoError(t, err)

	p, err := store.Projects.Find(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, "first", p.Name)
}

// TestFind_NotFound tests the miss path.
func TestFind_NotFound(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	_, err := store.Projects.Find(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestProjects_Update_Partial tests that a patch changes only its non-nil
// fields and commits exactly one range write.
func TestProjects_Update_Partial(t *testing.T) {
	ctx := context.Background()
	f := newFakeSheet()
	store := testStore(f)

	p, err := store.Projects.Insert(ctx, domain.Project{
		Name: "Dental Q3", Niche: "dentists", TargetLeads: 250,
	})
	require.NoError(t, err)

	writesBefore := f.writes
	updated, err := store.Projects.Update(ctx, p.ID, domain.ProjectPatch{
		Status:      strPtr(domain.ProjectStatusActive),
		CurrentStep: intPtr(2),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusActive, updated.Status)
	assert.Equal(t, 2, updated.CurrentStep)
	assert.Equal(t, "Dental Q3", updated.Name)
	assert.Equal(t, 250, updated.TargetLeads)
	assert.Equal(t, writesBefore+1, f.writes)
}

// TestUpdate_PreservesExtraColumns tests that operator-added columns past the
// mapped schema survive a read-modify-write.
func TestUpdate_PreservesExtraColumns(t *testing.T) {
	ctx := context.Background()
	f := newFakeSheet()
	store := testStore(f)

	p, err := store.Projects.Insert(ctx, domain.Project{Name: "Annotated"})
	require.NoError(t, err)

	// Operator scribbles in a column to the right of the schema.
	schema := table.For(table.KindProject)
	row := f.tabs[schema.Tab][1]
	f.tabs[schema.Tab][1] = append(append([]string{}, row...), "call them Tuesday")

	_, err = store.Projects.Update(ctx, p.ID, domain.ProjectPatch{Status: strPtr("active")})
	require.NoError(t, err)

	got := f.tabs[schema.Tab][1]
	assert.Equal(t, "call them Tuesday", got[len(got)-1])
	assert.Equal(t, "active", got[5])
}

// TestLeads_Delete_ShiftsRows tests physical deletion: the tail shifts up by
// one and the stale last row is cleared, all in a single write.
func TestLeads_Delete_ShiftsRows(t *testing.T) {
	ctx := context.Background()
	f := newFakeSheet()
	store := testStore(f)

	var ids []string
	for _, name := range []string{"one", "two", "three"} {
		l, err := store.Leads.Insert(ctx, domain.Lead{ProjectID: "p-1", Name: name})
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	writesBefore := f.writes
	require.NoError(t, store.Leads.Delete(ctx, ids[1]))
	assert.Equal(t, writesBefore+1, f.writes)

	leads, err := store.Leads.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "one", leads[0].Name)
	assert.Equal(t, "three", leads[1].Name)

	_, err = store.Leads.Find(ctx, ids[1])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDelete_LastRow tests deleting the final data row: only the clearing
// row is written.
func TestDelete_LastRow(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	l, err := store.Leads.Insert(ctx, domain.Lead{ProjectID: "p-1", Name: "only"})
	require.NoError(t, err)

	require.NoError(t, store.Leads.Delete(ctx, l.ID))

	leads, err := store.Leads.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

// TestLeads_ListByProject tests the foreign-key filter.
func TestLeads_ListByProject(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	for _, seed := range []struct{ project, name string }{
		{"p-1", "a"}, {"p-2", "b"}, {"p-1", "c"},
	} {
		_, err := store.Leads.Insert(ctx, domain.Lead{ProjectID: seed.project, Name: seed.name})
		require.NoError(t, err)
	}

	leads, err := store.Leads.ListByProject(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "a", leads[0].Name)
	assert.Equal(t, "c", leads[1].Name)
}

// TestTemplates_Update_StampsUpdatedAt tests that edits to generated copy
// refresh the timestamp.
func TestTemplates_Update_StampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	f := newFakeSheet()

	earlier := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	store := newStore(f, func() time.Time { return earlier })

	tpl, err := store.Templates.Insert(ctx, domain.EmailTemplate{
		ProjectID: "p-1", Subject: "Quick question", Body: "Hi {{name}},",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01T09:00:00Z", tpl.UpdatedAt)

	later := testStore(f)
	edited, err := later.Templates.Update(ctx, tpl.ID, domain.TemplatePatch{
		Subject: strPtr("Quick question for {{company}}"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Quick question for {{company}}", edited.Subject)
	assert.Equal(t, "2026-08-15T10:00:00Z", edited.UpdatedAt)
	assert.Equal(t, "Hi {{name}},", edited.Body)
}

// TestStats_Save_Upsert tests insert-on-first-sight and overwrite-after.
func TestStats_Save_Upsert(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	first, err := store.Stats.Save(ctx, domain.CampaignStat{
		CampaignID: "c-1", ProjectID: "p-1", Total: 10, Delivered: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15T10:00:00Z", first.UpdatedAt)

	_, err = store.Stats.Save(ctx, domain.CampaignStat{
		CampaignID: "c-1", ProjectID: "p-1", Total: 25, Delivered: 20,
	})
	require.NoError(t, err)

	stats, err := store.Stats.List(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 25, stats[0].Total)
	assert.Equal(t, 20, stats[0].Delivered)
}

// TestReadAll_HeaderDrift tests that a renamed mapped column fails every
// operation on the tab rather than writing into wrong cells.
func TestReadAll_HeaderDrift(t *testing.T) {
	ctx := context.Background()
	f := newFakeSheet()
	store := testStore(f)

	f.tabs["Projects"][0][1] = "title"

	_, err := store.Projects.List(ctx)
	assert.ErrorIs(t, err, domain.ErrMalformed)
}

// TestStore_Snapshot tests the one-round-trip read of all tabs.
func TestStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	p, err := store.Projects.Insert(ctx, domain.Project{Name: "Dental Q3"})
	require.NoError(t, err)
	_, err = store.Leads.Insert(ctx, domain.Lead{ProjectID: p.ID, Name: "Ada"})
	require.NoError(t, err)
	_, err = store.Leads.Insert(ctx, domain.Lead{ProjectID: p.ID, Name: "Grace"})
	require.NoError(t, err)

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Leads, 2)
	assert.Empty(t, snap.Templates)
	assert.Empty(t, snap.Stats)
}

// TestStore_Snapshot_FailsWhole tests that one drifted tab fails the whole
// snapshot instead of returning a partial aggregate.
func TestStore_Snapshot_FailsWhole(t *testing.T) {
	ctx := context.Background()
	f := newFakeSheet()
	store := testStore(f)

	f.tabs["CampaignStats"][0][0] = "campaign"

	_, err := store.Snapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrMalformed)
}

// TestOpError_Context tests that repository failures carry entity, key and
// operation for the problem responses.
func TestOpError_Context(t *testing.T) {
	ctx := context.Background()
	store := testStore(newFakeSheet())

	_, err := store.Leads.Find(ctx, "ghost")

	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "lead", opErr.Entity)
	assert.Equal(t, "ghost", opErr.Key)
	assert.Equal(t, "find", opErr.Op)
}
