// Package referral derives tier-progress and referral-conversion figures
// from the platform's progress snapshot and referral list.
package referral

import (
	"math"
	"strings"
)

// TierThreshold is one rung of the tier ladder: the tier name and the
// referral count needed to enter it.
type TierThreshold struct {
	Name         string `json:"name"`
	MinReferrals int    `json:"minReferrals"`
}

// DefaultTierTable is the fallback ladder used when the tier-structure
// endpoint is unavailable.
func DefaultTierTable() []TierThreshold {
	return []TierThreshold{
		{Name: "BRONZE", MinReferrals: 1},
		{Name: "SILVER", MinReferrals: 5},
		{Name: "GOLD", MinReferrals: 8},
		{Name: "DIAMOND", MinReferrals: 10},
	}
}

// ProgressInput carries the user's current standing. Pointer fields model
// values the backend may omit; a missing field yields the not-yet-computed
// state rather than a misleading default.
type ProgressInput struct {
	TierName      string
	LevelNumber   *int
	ReferralCount *int
}

// Progress is the derived progress toward the next tier. A nil
// NextTierMinReferrals means the user is at the top tier (or progress could
// not be computed, in which case ProgressPercent is 0).
type Progress struct {
	TierName             string
	LevelNumber          int
	ReferralCount        int
	NextTierMinReferrals *int
	ProgressPercent      int
	ReferralsNeeded      int
}

// ComputeProgress derives tier progress from the user's standing and the
// tier table. Tier names compare case-insensitively.
func ComputeProgress(in ProgressInput, table []TierThreshold) Progress {
	if in.TierName == "" || in.LevelNumber == nil || in.ReferralCount == nil {
		return Progress{TierName: in.TierName}
	}

	index := -1
	for i, tier := range table {
		if strings.EqualFold(tier.Name, in.TierName) {
			index = i
			break
		}
	}
	if index == -1 {
		// Unknown tier name: report the not-yet-computed state.
		return Progress{TierName: in.TierName, LevelNumber: *in.LevelNumber, ReferralCount: *in.ReferralCount}
	}

	p := Progress{
		TierName:      in.TierName,
		LevelNumber:   *in.LevelNumber,
		ReferralCount: *in.ReferralCount,
	}

	if index == len(table)-1 {
		// Top tier: complete, nothing further to divide toward.
		p.ProgressPercent = 100
		return p
	}

	nextMin := table[index+1].MinReferrals
	p.NextTierMinReferrals = &nextMin
	p.ProgressPercent = clampPercent(math.Round(float64(p.ReferralCount) / float64(nextMin) * 100))
	if needed := nextMin - p.ReferralCount; needed > 0 {
		p.ReferralsNeeded = needed
	}
	return p
}

func clampPercent(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
