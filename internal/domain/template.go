package domain

// Template variants. Follow-ups are numbered from 1.
const (
	TemplateVariantInitial  = "initial"
	TemplateVariantFollowUp = "follow_up" // stored as follow_up_1, follow_up_2, ...
)

// EmailTemplate is generated campaign copy for one project. Updated in place
// when the operator edits the generated subject or body.
type EmailTemplate struct {
	ID        string `json:"template_id"`
	ProjectID string `json:"project_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	// Attachments is a semicolon-separated list of attachment names, stored
	// serialized in a single cell.
	Attachments string `json:"attachments"`
	Variant     string `json:"variant"`
	UpdatedAt   string `json:"updated_at"`
}

// TemplatePatch is a partial update; nil fields are left untouched.
type TemplatePatch struct {
	Subject     *string `json:"subject,omitempty"`
	Body        *string `json:"body,omitempty"`
	Attachments *string `json:"attachments,omitempty"`
	Variant     *string `json:"variant,omitempty"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

// Apply merges the non-nil fields of the patch over t.
func (patch TemplatePatch) Apply(t *EmailTemplate) {
	if patch.Subject != nil {
		t.Subject = *patch.Subject
	}
	if patch.Body != nil {
		t.Body = *patch.Body
	}
	if patch.Attachments != nil {
		t.Attachments = *patch.Attachments
	}
	if patch.Variant != nil {
		t.Variant = *patch.Variant
	}
	if patch.UpdatedAt != nil {
		t.UpdatedAt = *patch.UpdatedAt
	}
}
