// Package normalize converts the heterogeneous record shapes returned by the
// platform backend into the unified Transaction model. Each normalizer is a
// pure function over its input: records are never dropped or merged here
// (ownership filtering for commissions is a separate, explicit step).
package normalize

import (
	"github.com/growvest/ledger-engine/pkg/money"
)

// RawPaymentRecord is a record from the payment-history endpoint. Payment
// records are the least semantically typed source: the same endpoint mixes
// activation fees, product purchases, credits, and the occasional
// commission payout.
type RawPaymentRecord struct {
	ID          string       `json:"id"`
	Amount      money.Amount `json:"amount"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	CreatedAt   string       `json:"createdAt"`
	Date        string       `json:"date"`
	Timestamp   string       `json:"timestamp"`
}

// RawCommissionRecord is a record from the commission-history endpoint.
// One commission event is visible to both sides of a referral; the
// referrer/referred ids identify whose earning it is.
type RawCommissionRecord struct {
	ID               string       `json:"id"`
	CommissionAmount money.Amount `json:"commissionAmount"`
	ReferrerUserID   string       `json:"referrerUserId"`
	ReferredUserID   string       `json:"referredUserId"`
	CommissionStatus string       `json:"commissionStatus"`
	ReferralLevel    int          `json:"referralLevel"`
	CreatedAt        string       `json:"createdAt"`
	Date             string       `json:"date"`
	Timestamp        string       `json:"timestamp"`
}

// RawWithdrawalRecord is a record from the withdrawal-history endpoint.
type RawWithdrawalRecord struct {
	ID            string       `json:"id"`
	Amount        money.Amount `json:"amount"`
	Status        string       `json:"status"`
	StatusDisplay string       `json:"statusDisplay"`
	Description   string       `json:"description"`
	CreatedAt     string       `json:"createdAt"`
	Date          string       `json:"date"`
	Timestamp     string       `json:"timestamp"`
}
