package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growvest/ledger-engine/pkg/money"
)

// Origin identifies which backend source a transaction was built from.
type Origin string

const (
	OriginPayment    Origin = "payment"
	OriginCommission Origin = "commission"
	OriginWithdrawal Origin = "withdrawal"
	OriginFallback   Origin = "fallback"
)

// TransactionType is the semantic classification of a transaction.
type TransactionType string

const (
	TypeEarning    TransactionType = "earning"
	TypePayment    TransactionType = "payment"
	TypeWithdrawal TransactionType = "withdrawal"
)

// Status is the normalized settlement status of a transaction. Backend
// vocabularies vary per endpoint; normalization collapses them to three.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
)

// Transaction is the unified view of one financial record, regardless of
// which backend endpoint produced it. Amount is always a non-negative
// magnitude; direction is implied by Type.
type Transaction struct {
	ID          string
	Origin      Origin
	Type        TransactionType
	Title       string
	Description string
	Amount      money.Amount
	Status      Status
	OccurredAt  time.Time // zero value marks an unknown/unparsable date
	Raw         any       // original source record, for detail display only
}

// HasValidDate reports whether the transaction carries a usable timestamp.
// Records with unparsable dates are kept, sorted last, never dropped.
func (t *Transaction) HasValidDate() bool {
	return !t.OccurredAt.IsZero()
}

// Direction returns the display sign for the transaction: "+" for earnings,
// "-" for payments and withdrawals.
func (t *Transaction) Direction() string {
	if t.Type == TypeEarning {
		return "+"
	}
	return "-"
}

// SignedAmount returns the amount with the Type-derived sign applied. Sums
// always combine the stored magnitude with this sign rather than trusting
// any sign present in source data.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeEarning {
		return t.Amount.Abs().Decimal
	}
	return t.Amount.Abs().Neg()
}

// Snapshot is the result of one full pipeline run for one user. Re-running
// the pipeline replaces the previous snapshot wholesale; snapshots are never
// merged.
type Snapshot struct {
	ID           uuid.UUID
	UserID       string
	Transactions []Transaction
	// Degraded lists sources whose fetch failed and contributed nothing
	// (or a fallback value) to this snapshot.
	Degraded    []Origin
	GeneratedAt time.Time
}
