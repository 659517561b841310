// Package stats computes the cross-entity views the spreadsheet cannot join
// natively: per-project lead counts and campaign rate figures. All joins are
// in-memory over independently read tables.
package stats

import "github.com/leadforge-labs/leadforge/internal/domain"

// LeadCountsByProject groups leads by their project foreign key in a single
// pass. Every listed project gets an entry, including projects with zero
// leads; leads pointing at unlisted projects are ignored.
func LeadCountsByProject(projects []domain.Project, leads []domain.Lead) map[string]int {
	counts := make(map[string]int, len(projects))
	for _, p := range projects {
		counts[p.ID] = 0
	}
	for _, l := range leads {
		if _, ok := counts[l.ProjectID]; ok {
			counts[l.ProjectID]++
		}
	}
	return counts
}

// Rates holds campaign rate figures as fractions in [0,1]. Conversion to
// percentages happens exactly once, at the presentation boundary.
type Rates struct {
	Delivery float64 `json:"delivery_rate"`
	Open     float64 `json:"open_rate"`
	Click    float64 `json:"click_rate"`
	Bounce   float64 `json:"bounce_rate"`
}

// CampaignRates derives rate figures from raw counters. Delivery and bounce
// are measured against total sends; open and click against deliveries, since
// an undelivered mail can be neither opened nor clicked.
func CampaignRates(stat domain.CampaignStat) Rates {
	return Rates{
		Delivery: frac(stat.Delivered, stat.Total),
		Open:     frac(stat.Opened, stat.Delivered),
		Click:    frac(stat.Clicked, stat.Delivered),
		Bounce:   frac(stat.Bounced, stat.Total),
	}
}

// frac guards against empty denominators: no sends means every rate is zero,
// not a division failure.
func frac(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
