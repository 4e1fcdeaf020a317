package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growvest/ledger-engine/internal/ledger/aggregate"
	"github.com/growvest/ledger-engine/internal/ledger/domain"
	"github.com/growvest/ledger-engine/internal/ledger/service"
	"github.com/growvest/ledger-engine/internal/referral"
	"github.com/growvest/ledger-engine/internal/transport/httpapi/middleware"
	"github.com/growvest/ledger-engine/pkg/money"
)

type stubLedgerService struct {
	snapshot *domain.Snapshot
	txs      []domain.Transaction
	sections []aggregate.Section
	overview *service.Overview

	gotType   domain.TransactionType
	gotPeriod aggregate.Period
}

func (s *stubLedgerService) Transactions(ctx context.Context, userID string, txType domain.TransactionType, period aggregate.Period) (*domain.Snapshot, []domain.Transaction) {
	s.gotType = txType
	s.gotPeriod = period
	return s.snapshot, s.txs
}

func (s *stubLedgerService) Grouped(ctx context.Context, userID string) (*domain.Snapshot, []aggregate.Section) {
	return s.snapshot, s.sections
}

func (s *stubLedgerService) Overview(ctx context.Context, userID string) *service.Overview {
	return s.overview
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "u1")
	return req.WithContext(ctx)
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		ID:          uuid.New(),
		UserID:      "u1",
		GeneratedAt: time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetTransactions(t *testing.T) {
	occurred := time.Date(2025, 10, 19, 8, 0, 0, 0, time.UTC)
	stub := &stubLedgerService{
		snapshot: testSnapshot(),
		txs: []domain.Transaction{
			{
				ID:     "commission-c1",
				Origin: domain.OriginCommission,
				Type:   domain.TypeEarning,
				Title:  "Referral Commission",
				Amount: money.FromInt(250),
				Status:     domain.StatusCompleted,
				OccurredAt: occurred,
			},
			{
				ID:     "withdrawal-w1",
				Origin: domain.OriginWithdrawal,
				Type:   domain.TypeWithdrawal,
				Title:  "Withdrawal",
				Amount: money.FromInt(100),
				Status: domain.StatusCompleted,
			},
		},
	}
	h := NewLedgerHandler(stub)

	rec := httptest.NewRecorder()
	h.GetTransactions(rec, authedRequest(http.MethodGet, "/api/v1/ledger/transactions?type=earning&period=this_month"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TypeEarning, stub.gotType)
	assert.Equal(t, aggregate.PeriodThisMonth, stub.gotPeriod)

	var body struct {
		Transactions []transactionResponse `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Transactions, 2)

	assert.Equal(t, "250", body.Transactions[0].Amount)
	assert.Equal(t, "+", body.Transactions[0].Direction)
	require.NotNil(t, body.Transactions[0].OccurredAt)

	assert.Equal(t, "-", body.Transactions[1].Direction)
	assert.Nil(t, body.Transactions[1].OccurredAt, "invalid dates serialize as absent, not zero time")
}

func TestGetTransactions_BadFilters(t *testing.T) {
	h := NewLedgerHandler(&stubLedgerService{snapshot: testSnapshot()})

	rec := httptest.NewRecorder()
	h.GetTransactions(rec, authedRequest(http.MethodGet, "/api/v1/ledger/transactions?type=refund"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.GetTransactions(rec, authedRequest(http.MethodGet, "/api/v1/ledger/transactions?period=fortnight"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTransactions_NoIdentity(t *testing.T) {
	h := NewLedgerHandler(&stubLedgerService{snapshot: testSnapshot()})

	rec := httptest.NewRecorder()
	h.GetTransactions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/transactions", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSummary(t *testing.T) {
	nextMin := 8
	stub := &stubLedgerService{
		overview: &service.Overview{
			SnapshotID: uuid.New(),
			Summary: aggregate.Summary{
				LifetimeEarnings: money.FromInt(400),
				PercentChange:    "+50%",
				ApprovedBalance:  money.FromInt(250),
			},
			TierProgress: referral.Progress{
				TierName:             "SILVER",
				ProgressPercent:      75,
				ReferralsNeeded:      2,
				NextTierMinReferrals: &nextMin,
			},
			WalletBalance: money.FromInt(250),
		},
	}
	h := NewLedgerHandler(stub)

	rec := httptest.NewRecorder()
	h.GetSummary(rec, authedRequest(http.MethodGet, "/api/v1/ledger/summary"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `{
		"lifetime_earnings": "400",
		"this_month_earnings": "0",
		"previous_month_earnings": "0",
		"percent_change": "+50%",
		"total_withdrawals": "0",
		"approved_balance": "250"
	}`, string(body["summary"]))
}

func TestGetReferralStats(t *testing.T) {
	h := NewReferralHandler(stubReferralService{stats: referral.Stats{
		TotalReferrals:        3,
		PaidReferrals:         3,
		PendingReferrals:      1,
		ConversionRatePercent: 75,
	}})

	rec := httptest.NewRecorder()
	h.GetStats(rec, authedRequest(http.MethodGet, "/api/v1/referrals/stats"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"total_referrals": 3,
		"active_referrals": 0,
		"paid_referrals": 3,
		"pending_referrals": 1,
		"conversion_rate_percent": 75
	}`, rec.Body.String())
}

type stubReferralService struct {
	stats referral.Stats
}

func (s stubReferralService) ReferralStats(ctx context.Context, userID string) referral.Stats {
	return s.stats
}
