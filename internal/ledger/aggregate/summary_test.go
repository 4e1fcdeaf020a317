package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/growvest/ledger-engine/internal/ledger/aggregate"
	"github.com/growvest/ledger-engine/internal/ledger/domain"
	"github.com/growvest/ledger-engine/pkg/money"
)

var now = time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

func tx(txType domain.TransactionType, amount int64, status domain.Status, occurredAt time.Time) domain.Transaction {
	return domain.Transaction{
		Type:       txType,
		Amount:     money.FromInt(amount),
		Status:     status,
		OccurredAt: occurredAt,
	}
}

func TestSummarize_OnlyCompletedMoneyCounts(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeEarning, 300, domain.StatusCompleted, now),
		tx(domain.TypeEarning, 500, domain.StatusProcessing, now),
		tx(domain.TypeEarning, 200, domain.StatusFailed, now),
		tx(domain.TypeWithdrawal, 100, domain.StatusCompleted, now),
		tx(domain.TypeWithdrawal, 999, domain.StatusProcessing, now),
		tx(domain.TypePayment, 50, domain.StatusCompleted, now),
	}

	s := aggregate.Summarize(txs, now)

	assert.Equal(t, "300", s.LifetimeEarnings.String())
	assert.Equal(t, "100", s.TotalWithdrawals.String())
	assert.Equal(t, "200", s.ApprovedBalance.String())
}

func TestSummarize_MonthBuckets(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeEarning, 150, domain.StatusCompleted, now),
		tx(domain.TypeEarning, 100, domain.StatusCompleted, now.AddDate(0, 0, -35)), // Sep 2025
		tx(domain.TypeEarning, 80, domain.StatusCompleted, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
		tx(domain.TypeEarning, 40, domain.StatusCompleted, time.Time{}), // unknown date: lifetime only
	}

	s := aggregate.Summarize(txs, now)

	assert.Equal(t, "150", s.ThisMonthEarnings.String())
	assert.Equal(t, "100", s.PreviousMonthEarnings.String())
	assert.Equal(t, "370", s.LifetimeEarnings.String())
	assert.Equal(t, "+50%", s.PercentChange)
}

func TestSummarize_PercentChange(t *testing.T) {
	tests := []struct {
		name      string
		thisMonth int64
		prevMonth int64
		expected  string
	}{
		{"growth from zero", 300, 0, "+100%"},
		{"flat at zero", 0, 0, "0%"},
		{"fifty percent up", 150, 100, "+50%"},
		{"equal months", 100, 100, "+0%"},
		{"decline", 50, 100, "-50%"},
		{"rounded", 100, 300, "-67%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txs []domain.Transaction
			if tt.thisMonth > 0 {
				txs = append(txs, tx(domain.TypeEarning, tt.thisMonth, domain.StatusCompleted, now))
			}
			if tt.prevMonth > 0 {
				txs = append(txs, tx(domain.TypeEarning, tt.prevMonth, domain.StatusCompleted, now.AddDate(0, -1, 0)))
			}

			s := aggregate.Summarize(txs, now)
			assert.Equal(t, tt.expected, s.PercentChange)
		})
	}
}

func TestSummarize_JanuaryLooksBackToDecember(t *testing.T) {
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx(domain.TypeEarning, 200, domain.StatusCompleted, jan),
		tx(domain.TypeEarning, 100, domain.StatusCompleted, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)),
		// Same month number, wrong year: must not land in previous month.
		tx(domain.TypeEarning, 999, domain.StatusCompleted, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)),
	}

	s := aggregate.Summarize(txs, jan)

	assert.Equal(t, "200", s.ThisMonthEarnings.String())
	assert.Equal(t, "100", s.PreviousMonthEarnings.String())
}

func TestSummarize_BalanceNeverNegative(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeEarning, 100, domain.StatusCompleted, now),
		tx(domain.TypeWithdrawal, 500, domain.StatusCompleted, now),
	}

	s := aggregate.Summarize(txs, now)

	assert.Equal(t, "0", s.ApprovedBalance.String())
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := aggregate.Summarize(nil, now)

	assert.Equal(t, "0", s.LifetimeEarnings.String())
	assert.Equal(t, "0", s.ApprovedBalance.String())
	assert.Equal(t, "0%", s.PercentChange)
}

func TestSummarize_Idempotent(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeEarning, 300, domain.StatusCompleted, now),
		tx(domain.TypeWithdrawal, 120, domain.StatusCompleted, now.AddDate(0, -2, 0)),
	}

	first := aggregate.Summarize(txs, now)
	second := aggregate.Summarize(txs, now)

	assert.Equal(t, first, second)
}
