package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// Templates is the repository for the Templates tab.
type Templates struct {
	t   tableRepo[domain.EmailTemplate]
	now func() time.Time
}

func newTemplates(client RangeClient, now func() time.Time) *Templates {
	return &Templates{
		t: tableRepo[domain.EmailTemplate]{
			client: client,
			codec: codec[domain.EmailTemplate]{
				entity: "template",
				schema: table.For(table.KindTemplate),
				decode: table.DecodeTemplate,
				encode: table.EncodeTemplate,
				key:    func(t domain.EmailTemplate) string { return t.ID },
			},
		},
		now: now,
	}
}

// Find returns the template with the given id.
func (r *Templates) Find(ctx context.Context, id string) (domain.EmailTemplate, error) {
	return r.t.Find(ctx, id)
}

// ListByProject returns a project's templates in sheet order, which is also
// variant order (initial first, then follow-ups) as the generator appends
// them that way.
func (r *Templates) ListByProject(ctx context.Context, projectID string) ([]domain.EmailTemplate, error) {
	return r.t.List(ctx, func(t domain.EmailTemplate) bool { return t.ProjectID == projectID })
}

// Insert appends a new template.
func (r *Templates) Insert(ctx context.Context, t domain.EmailTemplate) (domain.EmailTemplate, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Variant == "" {
		t.Variant = domain.TemplateVariantInitial
	}
	if t.UpdatedAt == "" {
		t.UpdatedAt = r.now().UTC().Format(time.RFC3339)
	}
	return r.t.Insert(ctx, t)
}

// Update applies the patch (operator edits to generated copy) and stamps
// UpdatedAt.
func (r *Templates) Update(ctx context.Context, id string, patch domain.TemplatePatch) (domain.EmailTemplate, error) {
	stamp := r.now().UTC().Format(time.RFC3339)
	return r.t.Update(ctx, id, func(t *domain.EmailTemplate) {
		patch.Apply(t)
		t.UpdatedAt = stamp
	})
}

// Delete physically removes the template row.
func (r *Templates) Delete(ctx context.Context, id string) error {
	return r.t.Delete(ctx, id)
}
