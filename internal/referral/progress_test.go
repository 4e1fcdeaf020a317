package referral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growvest/ledger-engine/internal/referral"
)

func intPtr(v int) *int { return &v }

func input(tier string, level, count int) referral.ProgressInput {
	return referral.ProgressInput{TierName: tier, LevelNumber: intPtr(level), ReferralCount: intPtr(count)}
}

func TestComputeProgress(t *testing.T) {
	table := referral.DefaultTierTable()

	tests := []struct {
		name            string
		in              referral.ProgressInput
		expectedPercent int
		expectedNeeded  int
		nextTierMin     *int
	}{
		{"bronze partway to silver", input("BRONZE", 1, 2), 40, 3, intPtr(5)},
		{"silver toward gold", input("SILVER", 2, 6), 75, 2, intPtr(8)},
		{"gold at gold threshold", input("GOLD", 3, 8), 80, 2, intPtr(10)},
		{"overshoot clamps to 100", input("GOLD", 3, 25), 100, 0, intPtr(10)},
		{"zero referrals", input("BRONZE", 1, 0), 0, 5, intPtr(5)},
		{"case-insensitive tier name", input("silver", 2, 4), 50, 4, intPtr(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referral.ComputeProgress(tt.in, table)
			assert.Equal(t, tt.expectedPercent, p.ProgressPercent)
			assert.Equal(t, tt.expectedNeeded, p.ReferralsNeeded)
			require.NotNil(t, p.NextTierMinReferrals)
			assert.Equal(t, *tt.nextTierMin, *p.NextTierMinReferrals)
		})
	}
}

func TestComputeProgress_TopTier(t *testing.T) {
	// Any referral count at the top tier reads as complete.
	for _, count := range []int{0, 5, 50} {
		p := referral.ComputeProgress(input("DIAMOND", 5, count), referral.DefaultTierTable())

		assert.Equal(t, 100, p.ProgressPercent)
		assert.Equal(t, 0, p.ReferralsNeeded)
		assert.Nil(t, p.NextTierMinReferrals)
	}
}

func TestComputeProgress_MissingInputs(t *testing.T) {
	table := referral.DefaultTierTable()

	tests := []struct {
		name string
		in   referral.ProgressInput
	}{
		{"no tier name", referral.ProgressInput{LevelNumber: intPtr(1), ReferralCount: intPtr(3)}},
		{"no level", referral.ProgressInput{TierName: "BRONZE", ReferralCount: intPtr(3)}},
		{"no referral count", referral.ProgressInput{TierName: "BRONZE", LevelNumber: intPtr(1)}},
		{"unknown tier", input("PLATINUM", 1, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referral.ComputeProgress(tt.in, table)
			assert.Equal(t, 0, p.ProgressPercent)
			assert.Nil(t, p.NextTierMinReferrals)
			assert.Equal(t, 0, p.ReferralsNeeded)
		})
	}
}

func TestComputeProgress_BackendTierTable(t *testing.T) {
	table := []referral.TierThreshold{
		{Name: "STARTER", MinReferrals: 0},
		{Name: "PRO", MinReferrals: 20},
	}

	p := referral.ComputeProgress(input("STARTER", 1, 5), table)

	assert.Equal(t, 25, p.ProgressPercent)
	assert.Equal(t, 15, p.ReferralsNeeded)
}
