package domain

// Defaults applied when the ingestion webhook omits optional fields.
const (
	LeadSourceManual    = "Manual Entry"
	LeadStatusActive    = "Active"
	LeadStatusUnsub     = "Unsubscribed"
	LeadStatusBounced   = "Bounced"
	LeadStatusConverted = "Converted"
)

// Lead is one scraped or manually entered contact. Rows are appended by the
// scraping/import collaborators and mutated in place by the validation pass
// and by manual edits in the sheet.
type Lead struct {
	ID        string `json:"lead_id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	Phone     string `json:"phone"`
	Website   string `json:"website"`
	Address   string `json:"address"`
	Rating    string `json:"rating"`
	ScrapedAt string `json:"scraped_at"`
	Error     string `json:"error"`

	Validation LeadValidation `json:"validation"`
}

// LeadValidation is the optional validation sub-record, flattened into
// trailing columns of the Leads tab. Empty until the validation pass runs.
type LeadValidation struct {
	Status      string `json:"status"`
	Score       string `json:"score"`
	Reason      string `json:"reason"`
	Deliverable string `json:"deliverable"`
	ValidatedAt string `json:"validated_at"`
}

// LeadPatch is a partial update; nil fields are left untouched.
type LeadPatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Company   *string `json:"company,omitempty"`
	Position  *string `json:"position,omitempty"`
	Source    *string `json:"source,omitempty"`
	Status    *string `json:"status,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Website   *string `json:"website,omitempty"`
	Address   *string `json:"address,omitempty"`
	Rating    *string `json:"rating,omitempty"`
	ScrapedAt *string `json:"scraped_at,omitempty"`
	Error     *string `json:"error,omitempty"`

	ValidationStatus      *string `json:"validation_status,omitempty"`
	ValidationScore       *string `json:"validation_score,omitempty"`
	ValidationReason      *string `json:"validation_reason,omitempty"`
	ValidationDeliverable *string `json:"validation_deliverable,omitempty"`
	ValidatedAt           *string `json:"validated_at,omitempty"`
}

// Apply merges the non-nil fields of the patch over l.
func (patch LeadPatch) Apply(l *Lead) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&l.Name, patch.Name)
	set(&l.Email, patch.Email)
	set(&l.Company, patch.Company)
	set(&l.Position, patch.Position)
	set(&l.Source, patch.Source)
	set(&l.Status, patch.Status)
	set(&l.Phone, patch.Phone)
	set(&l.Website, patch.Website)
	set(&l.Address, patch.Address)
	set(&l.Rating, patch.Rating)
	set(&l.ScrapedAt, patch.ScrapedAt)
	set(&l.Error, patch.Error)
	set(&l.Validation.Status, patch.ValidationStatus)
	set(&l.Validation.Score, patch.ValidationScore)
	set(&l.Validation.Reason, patch.ValidationReason)
	set(&l.Validation.Deliverable, patch.ValidationDeliverable)
	set(&l.Validation.ValidatedAt, patch.ValidatedAt)
}
