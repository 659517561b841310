package domain

// Project statuses as stored in the sheet. Rows are created once and the
// status advances as the operator moves through the campaign stages.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusActive    = "active"
	ProjectStatusPaused    = "paused"
	ProjectStatusCompleted = "completed"
)

// Project is one lead-generation campaign owned by the UI flow.
type Project struct {
	ID           string `json:"project_id"`
	Name         string `json:"name"`
	Niche        string `json:"niche"`
	TargetLeads  int    `json:"target_leads"`
	CampaignType string `json:"campaign_type"`
	Status       string `json:"status"`
	// CurrentStep and CompletedSteps track the UI stepper position.
	CurrentStep    int    `json:"current_step"`
	CompletedSteps int    `json:"completed_steps"`
	CreatedAt      string `json:"created_at"`
}

// ProjectPatch is a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Name           *string `json:"name,omitempty"`
	Niche          *string `json:"niche,omitempty"`
	TargetLeads    *int    `json:"target_leads,omitempty"`
	CampaignType   *string `json:"campaign_type,omitempty"`
	Status         *string `json:"status,omitempty"`
	CurrentStep    *int    `json:"current_step,omitempty"`
	CompletedSteps *int    `json:"completed_steps,omitempty"`
}

// Apply merges the non-nil fields of the patch over p.
func (patch ProjectPatch) Apply(p *Project) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Niche != nil {
		p.Niche = *patch.Niche
	}
	if patch.TargetLeads != nil {
		p.TargetLeads = *patch.TargetLeads
	}
	if patch.CampaignType != nil {
		p.CampaignType = *patch.CampaignType
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.CurrentStep != nil {
		p.CurrentStep = *patch.CurrentStep
	}
	if patch.CompletedSteps != nil {
		p.CompletedSteps = *patch.CompletedSteps
	}
}
