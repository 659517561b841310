package api

import (
	"encoding/json"
	"net/http"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// leadPayload is the fixed ingestion shape posted by scraping and import
// collaborators. Absent optional fields default downstream in the lead
// repository (source "Manual Entry", status "Active").
type leadPayload struct {
	LeadID    string `json:"lead_id"`
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
}

func (p leadPayload) lead() domain.Lead {
	return domain.Lead{
		ID:        p.LeadID,
		ProjectID: p.ProjectID,
		Name:      p.Name,
		Email:     p.Email,
		Company:   p.Company,
		Position:  p.Position,
		Source:    p.Source,
		Status:    p.Status,
		Phone:     p.Phone,
		Website:   p.Website,
		Address:   p.Address,
		Rating:    p.Rating,
		ScrapedAt: p.ScrapedAt,
		Error:     p.Error,
	}
}

// WebhookLead ingests one scraped lead and appends it to the Leads tab. The
// collaborator carries its own credential like any other caller; the service
// keeps no session on its behalf.
func (h *Handler) WebhookLead(w http.ResponseWriter, r *http.Request) {
	var payload leadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid webhook payload")
		return
	}
	if payload.ProjectID == "" {
		WriteProblem(w, r, http.StatusBadRequest, "project_id is required")
		return
	}

	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := store.Leads.Insert(r.Context(), payload.lead())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
