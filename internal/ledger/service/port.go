package service

import (
	"context"

	"github.com/growvest/ledger-engine/internal/ledger/normalize"
	"github.com/growvest/ledger-engine/internal/referral"
	"github.com/growvest/ledger-engine/pkg/money"
)

// ProgressSnapshot is the user's standing as reported by the platform
// backend. Pointer fields mark values the backend may omit.
type ProgressSnapshot struct {
	TierName      string       `json:"tierName"`
	LevelNumber   *int         `json:"levelNumber"`
	WalletBalance money.Amount `json:"walletBalance"`
	ReferralCount *int         `json:"referralCount"`
	FirstOrder    bool         `json:"firstOrder"`
}

// ReferralPage is the referral list plus the backend's authoritative
// paid-referral count, which is reported independently of the list.
type ReferralPage struct {
	Referrals     []referral.Referral `json:"data"`
	ReferralCount int                 `json:"referralCount"`
}

// PlatformSource is the engine's view of the platform backend. Each call is
// independent; any one may fail without affecting the others.
type PlatformSource interface {
	PaymentHistory(ctx context.Context, userID string) ([]normalize.RawPaymentRecord, error)
	CommissionHistory(ctx context.Context, userID string) ([]normalize.RawCommissionRecord, error)
	WithdrawalHistory(ctx context.Context, userID string) ([]normalize.RawWithdrawalRecord, error)
	UserProgress(ctx context.Context, userID string) (*ProgressSnapshot, error)
	TierStructure(ctx context.Context) ([]referral.TierThreshold, error)
	Referrals(ctx context.Context, userID string) (*ReferralPage, error)
}

// BalanceCache stores the last known wallet balance per user, serving as the
// middle rung of the balance fallback ladder.
type BalanceCache interface {
	// GetBalance returns the cached balance and whether one was present.
	GetBalance(ctx context.Context, userID string) (money.Amount, bool, error)
	// SetBalance records the balance after a successful live fetch.
	SetBalance(ctx context.Context, userID string, balance money.Amount) error
}
