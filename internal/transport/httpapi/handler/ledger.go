package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/growvest/ledger-engine/internal/ledger/aggregate"
	"github.com/growvest/ledger-engine/internal/ledger/domain"
	"github.com/growvest/ledger-engine/internal/ledger/service"
	"github.com/growvest/ledger-engine/internal/transport/httpapi/middleware"
)

// LedgerService is the handler's view of the ledger pipeline.
type LedgerService interface {
	Transactions(ctx context.Context, userID string, txType domain.TransactionType, period aggregate.Period) (*domain.Snapshot, []domain.Transaction)
	Grouped(ctx context.Context, userID string) (*domain.Snapshot, []aggregate.Section)
	Overview(ctx context.Context, userID string) *service.Overview
}

// LedgerHandler serves the unified transaction list and its aggregates.
type LedgerHandler struct {
	svc LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(svc LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// transactionResponse is the wire shape of one transaction. Amount is an
// unsigned decimal string; direction carries the sign so clients never
// parse it out of a formatted amount.
type transactionResponse struct {
	ID          string     `json:"id"`
	Origin      string     `json:"origin"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Amount      string     `json:"amount"`
	Direction   string     `json:"direction"`
	Status      string     `json:"status"`
	OccurredAt  *time.Time `json:"occurredAt,omitempty"`
}

func toTransactionResponse(t domain.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          t.ID,
		Origin:      string(t.Origin),
		Type:        string(t.Type),
		Title:       t.Title,
		Description: t.Description,
		Amount:      t.Amount.Abs().String(),
		Direction:   t.Direction(),
		Status:      string(t.Status),
	}
	if t.HasValidDate() {
		occurredAt := t.OccurredAt
		resp.OccurredAt = &occurredAt
	}
	return resp
}

func toTransactionResponses(txs []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i, t := range txs {
		out[i] = toTransactionResponse(t)
	}
	return out
}

// GetTransactions handles GET /api/v1/ledger/transactions?type=&period=
func (h *LedgerHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	txType, ok := aggregate.ParseType(r.URL.Query().Get("type"))
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown transaction type filter")
		return
	}
	period, ok := aggregate.ParsePeriod(r.URL.Query().Get("period"))
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown period filter")
		return
	}

	snapshot, txs := h.svc.Transactions(r.Context(), userID, txType, period)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id":  snapshot.ID,
		"generated_at": snapshot.GeneratedAt,
		"degraded":     snapshot.Degraded,
		"transactions": toTransactionResponses(txs),
	})
}

// sectionResponse is one labeled group of transactions.
type sectionResponse struct {
	Label string                `json:"label"`
	Items []transactionResponse `json:"items"`
}

// GetGroupedTransactions handles GET /api/v1/ledger/transactions/grouped
func (h *LedgerHandler) GetGroupedTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	snapshot, sections := h.svc.Grouped(r.Context(), userID)

	out := make([]sectionResponse, len(sections))
	for i, s := range sections {
		out[i] = sectionResponse{
			Label: s.Label,
			Items: toTransactionResponses(s.Items),
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id":  snapshot.ID,
		"generated_at": snapshot.GeneratedAt,
		"degraded":     snapshot.Degraded,
		"sections":     out,
	})
}

// GetSummary handles GET /api/v1/ledger/summary
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	overview := h.svc.Overview(r.Context(), userID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id":  overview.SnapshotID,
		"generated_at": overview.GeneratedAt,
		"summary": map[string]interface{}{
			"lifetime_earnings":       overview.Summary.LifetimeEarnings.String(),
			"this_month_earnings":     overview.Summary.ThisMonthEarnings.String(),
			"previous_month_earnings": overview.Summary.PreviousMonthEarnings.String(),
			"percent_change":          overview.Summary.PercentChange,
			"total_withdrawals":       overview.Summary.TotalWithdrawals.String(),
			"approved_balance":        overview.Summary.ApprovedBalance.String(),
		},
		"wallet_balance": overview.WalletBalance.String(),
		"tier_progress": map[string]interface{}{
			"tier_name":               overview.TierProgress.TierName,
			"level_number":            overview.TierProgress.LevelNumber,
			"referral_count":          overview.TierProgress.ReferralCount,
			"next_tier_min_referrals": overview.TierProgress.NextTierMinReferrals,
			"progress_percent":        overview.TierProgress.ProgressPercent,
			"referrals_needed":        overview.TierProgress.ReferralsNeeded,
		},
	})
}
