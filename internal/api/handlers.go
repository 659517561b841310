// Package api exposes the data-access core over HTTP for the UI and the
// ingestion collaborators. Handlers are thin: they decode the carried
// credential, open a per-request store and translate error kinds to RFC 7807
// problem documents.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadforge-labs/leadforge/internal/auth"
	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/mailer"
	"github.com/leadforge-labs/leadforge/internal/repo"
	"github.com/leadforge-labs/leadforge/internal/stats"
)

// StoreOpener builds a data store for one request from its carried
// credential. Split out so tests can substitute a fake-backed store.
type StoreOpener func(ctx context.Context, cred domain.Credential) (*repo.Store, error)

// Handler carries the handler dependencies.
type Handler struct {
	auth *auth.Manager
	open StoreOpener
	mail *mailer.Sender
}

// NewHandler creates the API handler set.
func NewHandler(authMgr *auth.Manager, open StoreOpener, mail *mailer.Sender) *Handler {
	return &Handler{auth: authMgr, open: open, mail: mail}
}

// store opens the per-request data store from the context credential.
func (h *Handler) store(r *http.Request) (*repo.Store, error) {
	cred, ok := CredentialFrom(r.Context())
	if !ok {
		return nil, domain.ErrAuthMissing
	}
	return h.open(r.Context(), cred)
}

// Health reports liveness. No credential required.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AuthURL returns the provider consent URL with the project context packed
// into the opaque state parameter.
func (h *Handler) AuthURL(w http.ResponseWriter, r *http.Request) {
	state := auth.NewState(r.URL.Query().Get("project_id"), r.URL.Query().Get("return_to"))
	writeJSON(w, http.StatusOK, map[string]string{
		"url":   h.auth.AuthURL(state.Encode()),
		"state": state.Encode(),
	})
}

// AuthCallback exchanges the authorization code and returns the credential
// to the caller. The caller carries it from here on; the server stores
// nothing.
func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	state, err := auth.DecodeState(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		WriteProblem(w, r, http.StatusBadRequest, "missing authorization code")
		return
	}

	cred, err := h.auth.Exchange(r.Context(), code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"credential": cred,
		"project_id": state.ProjectID,
		"return_to":  state.ReturnTo,
	})
}

// ListProjects returns all projects in sheet order.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	projects, err := store.Projects.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// CreateProject appends a new project row.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var p domain.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid project payload")
		return
	}
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := store.Projects.Insert(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetProject returns one project by id.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	project, err := store.Projects.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// PatchProject applies a partial update to one project.
func (h *Handler) PatchProject(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid project patch")
		return
	}
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := store.Projects.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ListLeads returns leads, optionally filtered to one project.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var leads []domain.Lead
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		leads, err = store.Leads.ListByProject(r.Context(), projectID)
	} else {
		leads, err = store.Leads.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// CreateLead appends a new lead row.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var payload leadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid lead payload")
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

// PatchLead applies a partial update to one lead. Used by the validation
// pass and by manual edits.
func (h *Handler) PatchLead(w http.ResponseWriter, r *http.Request) {
	var patch domain.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid lead patch")
		return
	}
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := store.Leads.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteLead physically removes one lead row.
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := store.Leads.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTemplates returns a project's templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		WriteProblem(w, r, http.StatusBadRequest, "project_id is required")
		return
	}
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	templates, err := store.Templates.ListByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// CreateTemplate appends a new template row.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t domain.EmailTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid template payload")
		return
	}
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := store.Templates.Insert(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// PatchTemplate applies operator edits to generated copy.
func (h *Handler) PatchTemplate(w http.ResponseWriter, r *http.Request) {
	var patch domain.TemplatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid template patch")
		return
	}
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := store.Templates.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// PreviewTemplate sends the rendered template to an operator address.
func (h *Handler) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
	if h.mail == nil {
		WriteProblem(w, r, http.StatusServiceUnavailable, "SMTP is not configured")
		return
	}
	var body struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.To == "" {
		WriteProblem(w, r, http.StatusBadRequest, "recipient address is required")
		return
	}
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tmpl, err := store.Templates.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.mail.SendPreview(tmpl, body.To); err != nil {
		WriteProblem(w, r, http.StatusBadGateway, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// CampaignRates returns the rate figures for one campaign, as percentages.
// This is the single fraction-to-percent conversion point.
func (h *Handler) CampaignRates(w http.ResponseWriter, r *http.Request) {
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	stat, err := store.Stats.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ratesDTO(stats.CampaignRates(stat)))
}

// IngestCampaignEvents replaces a campaign's cached counters with counts
// recomputed from a fresh event batch.
func (h *Handler) IngestCampaignEvents(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectID string              `json:"project_id"`
		Events    []domain.EmailEvent `json:"events"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "invalid event payload")
		return
	}
	campaignID := chi.URLParam(r, "id")

	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stat, err := store.Stats.Find(r.Context(), campaignID)
	if errors.Is(err, domain.ErrNotFound) {
		stat = domain.CampaignStat{CampaignID: campaignID, ProjectID: body.ProjectID}
	} else if err != nil {
		writeError(w, r, err)
		return
	}

	merged := stats.MergeEventCounts(stat, body.Events)
	saved, err := store.Stats.Save(r.Context(), merged)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Overview returns the cross-entity dashboard view: every project with its
// lead count and campaign rates, from one batch read.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	store, err := h.store(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := store.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overviewDTO(snap))
}
