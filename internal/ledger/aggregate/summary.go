// Package aggregate derives display aggregates from a unified transaction
// list: earnings summaries, chronological sections, and period/type
// filtering. Every function takes the reference clock as a parameter so the
// math is a pure function of its inputs.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/growvest/ledger-engine/internal/ledger/domain"
	"github.com/growvest/ledger-engine/pkg/money"
)

// Summary holds the derived earnings and balance figures for one user.
// Only backend-confirmed (completed) records count toward any figure.
type Summary struct {
	LifetimeEarnings      money.Amount
	ThisMonthEarnings     money.Amount
	PreviousMonthEarnings money.Amount
	PercentChange         string
	TotalWithdrawals      money.Amount
	ApprovedBalance       money.Amount
}

// Summarize computes the summary figures over the unified transaction list.
func Summarize(txs []domain.Transaction, now time.Time) Summary {
	var lifetime, thisMonth, prevMonth, withdrawals decimal.Decimal

	curYear, curMonth := now.Year(), now.Month()
	prevYear, prevMonthOf := previousMonth(now)

	for i := range txs {
		t := &txs[i]
		if t.Status != domain.StatusCompleted {
			continue
		}

		switch t.Type {
		case domain.TypeEarning:
			amt := t.Amount.Abs().Decimal
			lifetime = lifetime.Add(amt)
			if t.HasValidDate() {
				if t.OccurredAt.Year() == curYear && t.OccurredAt.Month() == curMonth {
					thisMonth = thisMonth.Add(amt)
				} else if t.OccurredAt.Year() == prevYear && t.OccurredAt.Month() == prevMonthOf {
					prevMonth = prevMonth.Add(amt)
				}
			}
		case domain.TypeWithdrawal:
			withdrawals = withdrawals.Add(t.Amount.Abs().Decimal)
		}
	}

	balance := lifetime.Sub(withdrawals)
	if balance.IsNegative() {
		// A deficit means inconsistent backend data; clamp instead of
		// showing a negative balance.
		balance = decimal.Zero
	}

	return Summary{
		LifetimeEarnings:      money.FromDecimal(lifetime),
		ThisMonthEarnings:     money.FromDecimal(thisMonth),
		PreviousMonthEarnings: money.FromDecimal(prevMonth),
		PercentChange:         percentChange(thisMonth, prevMonth),
		TotalWithdrawals:      money.FromDecimal(withdrawals),
		ApprovedBalance:       money.FromDecimal(balance),
	}
}

// percentChange renders month-over-month change. A zero previous month
// cannot anchor a ratio: any current earnings read as +100%, none as 0%.
func percentChange(current, previous decimal.Decimal) string {
	if previous.IsZero() {
		if current.IsPositive() {
			return "+100%"
		}
		return "0%"
	}

	diff := current.Sub(previous)
	pct := diff.Abs().Div(previous).Mul(decimal.NewFromInt(100)).Round(0)

	sign := "+"
	if diff.IsNegative() {
		sign = "-"
	}
	return sign + pct.String() + "%"
}

// previousMonth returns the year and month of the calendar month before the
// given time, without day-of-month overflow.
func previousMonth(now time.Time) (int, time.Month) {
	year, month := now.Year(), now.Month()
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
