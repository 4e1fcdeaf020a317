package referral

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Referral is one entry of the raw referral list. The list includes
// unconverted leads the backend does not count toward the official total.
type Referral struct {
	UserID            string `json:"userId"`
	Name              string `json:"name"`
	HasPaidActivation bool   `json:"hasPaidActivation"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt"`
}

// Stats holds the derived referral counters. TotalReferrals is the
// backend's authoritative paid-referral count, which can legitimately
// diverge from the raw list length.
type Stats struct {
	TotalReferrals        int
	ActiveReferrals       int
	PaidReferrals         int
	PendingReferrals      int
	ConversionRatePercent float64
}

// ComputeStats deduplicates the raw referral list by user id and derives
// the counters. The conversion rate is paid referrals over the (deduped)
// list length, one decimal place; an empty list converts at 0, not NaN.
func ComputeStats(list []Referral, authoritativePaidCount int) Stats {
	seen := make(map[string]struct{}, len(list))
	deduped := make([]Referral, 0, len(list))
	for _, r := range list {
		if r.UserID != "" {
			if _, dup := seen[r.UserID]; dup {
				continue
			}
			seen[r.UserID] = struct{}{}
		}
		deduped = append(deduped, r)
	}

	stats := Stats{TotalReferrals: authoritativePaidCount}
	for _, r := range deduped {
		if r.HasPaidActivation {
			stats.PaidReferrals++
		} else {
			stats.PendingReferrals++
		}
		if strings.EqualFold(r.Status, "ACTIVE") {
			stats.ActiveReferrals++
		}
	}

	if len(deduped) > 0 {
		rate := decimal.NewFromInt(int64(stats.PaidReferrals)).
			Div(decimal.NewFromInt(int64(len(deduped)))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
		stats.ConversionRatePercent, _ = rate.Float64()
	}
	return stats
}
