package repo

import (
	"context"
	"errors"
	"time"

	"github.com/leadforge-labs/leadforge/internal/domain"
	"github.com/leadforge-labs/leadforge/internal/table"
)

// Stats is the repository for the CampaignStats tab, a cache of last-known
// counters from the delivery provider's event feed.
type Stats struct {
	t   tableRepo[domain.CampaignStat]
	now func() time.Time
}

func newStats(client RangeClient, now func() time.Time) *Stats {
	return &Stats{
		t: tableRepo[domain.CampaignStat]{
			client: client,
			codec: codec[domain.CampaignStat]{
				entity: "campaign_stat",
				schema: table.For(table.KindCampaignStat),
				decode: table.DecodeCampaignStat,
				encode: table.EncodeCampaignStat,
				key:    func(s domain.CampaignStat) string { return s.CampaignID },
			},
		},
		now: now,
	}
}

// Find returns the cached stat for one campaign.
func (r *Stats) Find(ctx context.Context, campaignID string) (domain.CampaignStat, error) {
	return r.t.Find(ctx, campaignID)
}

// List returns all cached campaign stats in sheet order.
func (r *Stats) List(ctx context.Context) ([]domain.CampaignStat, error) {
	return r.t.List(ctx, nil)
}

// Save writes the stat, inserting the row on first sight of the campaign and
// overwriting it afterwards. Counters are supplied whole by the merge step,
// so overwrite is the correct semantics.
func (r *Stats) Save(ctx context.Context, stat domain.CampaignStat) (domain.CampaignStat, error) {
	stat.UpdatedAt = r.now().UTC().Format(time.RFC3339)

	saved, err := r.t.Update(ctx, stat.CampaignID, func(s *domain.CampaignStat) { *s = stat })
	if errors.Is(err, domain.ErrNotFound) {
		return r.t.Insert(ctx, stat)
	}
	return saved, err
}
