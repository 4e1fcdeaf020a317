package aggregate

import (
	"time"

	"github.com/growvest/ledger-engine/internal/ledger/domain"
)

// Period is a calendar window for narrowing the transaction list.
type Period string

const (
	PeriodAllTime     Period = "all"
	PeriodThisMonth   Period = "this_month"
	PeriodLastMonth   Period = "last_month"
	PeriodLast3Months Period = "last_3_months"
	PeriodLast6Months Period = "last_6_months"
)

// TypeAll is the pass-through sentinel for the type filter.
const TypeAll domain.TransactionType = "all"

// ParsePeriod maps a query-string value to a Period. An empty value means
// all time.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodThisMonth, PeriodLastMonth, PeriodLast3Months, PeriodLast6Months:
		return Period(s), true
	case PeriodAllTime, "":
		return PeriodAllTime, true
	}
	return "", false
}

// ParseType maps a query-string value to a type filter. An empty value means
// all types.
func ParseType(s string) (domain.TransactionType, bool) {
	switch domain.TransactionType(s) {
	case domain.TypeEarning, domain.TypePayment, domain.TypeWithdrawal:
		return domain.TransactionType(s), true
	case TypeAll, "":
		return TypeAll, true
	}
	return "", false
}

// Filter narrows the transaction list by semantic type and calendar period.
// Transactions without a valid date pass every period filter so degraded
// records are never silently hidden.
func Filter(txs []domain.Transaction, txType domain.TransactionType, period Period, now time.Time) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if txType != TypeAll && t.Type != txType {
			continue
		}
		if !inPeriod(t, period, now) {
			continue
		}
		result = append(result, t)
	}
	return result
}

func inPeriod(t domain.Transaction, period Period, now time.Time) bool {
	if period == PeriodAllTime || !t.HasValidDate() {
		return true
	}

	switch period {
	case PeriodThisMonth:
		return t.OccurredAt.Year() == now.Year() && t.OccurredAt.Month() == now.Month()
	case PeriodLastMonth:
		prevYear, prevMonth := previousMonth(now)
		return t.OccurredAt.Year() == prevYear && t.OccurredAt.Month() == prevMonth
	case PeriodLast3Months:
		return !t.OccurredAt.Before(now.AddDate(0, -3, 0))
	case PeriodLast6Months:
		return !t.OccurredAt.Before(now.AddDate(0, -6, 0))
	}
	return true
}
