package stats

import "github.com/leadforge-labs/leadforge/internal/domain"

// MergeEventCounts recomputes a campaign's cached counters from a fresh
// event set. The provider's feed is the source of truth and a re-poll
// returns superseding totals, not deltas, so every counter is rebuilt from
// scratch rather than incremented. Events for other campaigns are skipped.
func MergeEventCounts(stat domain.CampaignStat, events []domain.EmailEvent) domain.CampaignStat {
	stat.Total = 0
	stat.Delivered = 0
	stat.Opened = 0
	stat.Clicked = 0
	stat.Bounced = 0
	stat.WindowStart = ""
	stat.WindowEnd = ""

	for _, ev := range events {
		if ev.CampaignID != stat.CampaignID {
			continue
		}
		switch ev.Type {
		case domain.EventSent:
			stat.Total++
		case domain.EventDelivered:
			stat.Delivered++
		case domain.EventOpened:
			stat.Opened++
		case domain.EventClicked:
			stat.Clicked++
		case domain.EventBounced:
			stat.Bounced++
		}
		if stat.WindowStart == "" || ev.OccurredAt < stat.WindowStart {
			stat.WindowStart = ev.OccurredAt
		}
		if ev.OccurredAt > stat.WindowEnd {
			stat.WindowEnd = ev.OccurredAt
		}
	}
	return stat
}
