package api

import (
	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/repo"
	"github.com/leadforge-labs/leadforge/internal/stats"
)

// RatesResponse carries campaign rates as percentages for the UI.
type RatesResponse struct {
	DeliveryRate float64 `json:"delivery_rate"`
	OpenRate     float64 `json:"open_rate"`
	ClickRate    float64 `json:"click_rate"`
	BounceRate   float64 `json:"bounce_rate"`
}

// ratesDTO is the single place fractions become percentages. Everything
// below the API boundary works in [0,1].
func ratesDTO(r stats.Rates) RatesResponse {
	return RatesResponse{
		DeliveryRate: r.Delivery * 100,
		OpenRate:     r.Open * 100,
		ClickRate:    r.Click * 100,
		BounceRate:   r.Bounce * 100,
	}
}

// ProjectOverview is one project's row in the dashboard view.
type ProjectOverview struct {
	Project   domain.Project  `json:"project"`
	LeadCount int             `json:"lead_count"`
	Rates     []RatesResponse `json:"campaign_rates"`
}

// OverviewResponse is the cross-entity dashboard view.
type OverviewResponse struct {
	Projects   []ProjectOverview `json:"projects"`
	TotalLeads int               `json:"total_leads"`
}

func overviewDTO(snap *repo.Snapshot) OverviewResponse {
	counts := stats.LeadCountsByProject(snap.Projects, snap.Leads)

	ratesByProject := make(map[string][]RatesResponse)
	for _, stat := range snap.Stats {
		ratesByProject[stat.ProjectID] = append(ratesByProject[stat.ProjectID],
			ratesDTO(stats.CampaignRates(stat)))
	}

	out := OverviewResponse{Projects: make([]ProjectOverview, 0, len(snap.Projects))}
	for _, p := range snap.Projects {
		out.Projects = append(out.Projects, ProjectOverview{
			Project:   p,
			LeadCount: counts[p.ID],
			Rates:     ratesByProject[p.ID],
		})
		out.TotalLeads += counts[p.ID]
	}
	return out
}
