package domain

// Email event types reported by the delivery provider's event feed.
const (
	EventSent      = "sent"
	EventDelivered = "delivered"
	EventOpened    = "opened"
	EventClicked   = "clicked"
	EventBounced   = "bounced"
)

// CampaignStat caches the last-known raw counters for one campaign. It is
// produced by polling the delivery provider's event feed and merged into the
// sheet; the feed remains the source of truth, so counters are recomputed on
// every merge rather than incremented.
type CampaignStat struct {
	CampaignID string `json:"campaign_id"`
	ProjectID  string `json:"project_id"`
	Total      int    `json:"total"`
	Delivered  int    `json:"delivered"`
	Opened     int    `json:"opened"`
	Clicked    int    `json:"clicked"`
	Bounced    int    `json:"bounced"`
	// WindowStart and WindowEnd bound the event timestamps the counters
	// were computed from (RFC 3339).
	WindowStart string `json:"window_start"`
	WindowEnd   string `json:"window_end"`
	UpdatedAt   string `json:"updated_at"`
}

// EmailEvent is one raw event from the delivery provider's feed.
type EmailEvent struct {
	CampaignID string `json:"campaign_id"`
	Email      string `json:"email"`
	Type       string `json:"type"`
	// OccurredAt is the provider timestamp (RFC 3339).
	OccurredAt string `json:"occurred_at"`
}
