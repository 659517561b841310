package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// Projects is the repository for the Projects tab.
type Projects struct {
	t   tableRepo[domain.Project]
	now func() time.Time
}

func newProjects(client RangeClient, now func() time.Time) *Projects {
	return &Projects{
		t: tableRepo[domain.Project]{
			client: client,
			codec: codec[domain.Project]{
				entity: "project",
				schema: table.For(table.KindProject),
				decode: table.DecodeProject,
				encode: table.EncodeProject,
				key:    func(p domain.Project) string { return p.ID },
			},
		},
		now: now,
	}
}

// Find returns the project with the given id.
func (r *Projects) Find(ctx context.Context, id string) (domain.Project, error) {
	return r.t.Find(ctx, id)
}

// List returns all projects in sheet order.
func (r *Projects) List(ctx context.Context) ([]domain.Project, error) {
	return r.t.List(ctx, nil)
}

// Insert appends a new project. An empty id gets a generated one, an empty
// status starts the project as a draft.
func (r *Projects) Insert(ctx context.Context, p domain.Project) (domain.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusDraft
	}
	if p.CreatedAt == "" {
		p.CreatedAt = r.now().UTC().Format(time.RFC3339)
	}
	return r.t.Insert(ctx, p)
}

// Update applies the patch to the stored project and writes the row back.
func (r *Projects) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	return r.t.Update(ctx, id, func(p *domain.Project) { patch.Apply(p) })
}
