package aggregate

import (
	"sort"
	"time"

	"github.com/growvest/ledger-engine/internal/ledger/domain"
)

// UnknownDateLabel is the section label for transactions with no usable
// timestamp. They are listed after all dated sections, never hidden.
const UnknownDateLabel = "Unknown Date"

// Section is one labeled bucket of the grouped transaction list.
type Section struct {
	Label string
	Items []domain.Transaction
}

// SortNewestFirst orders transactions newest-first. Transactions without a
// valid date go last, keeping their original relative order.
func SortNewestFirst(txs []domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, b := &txs[i], &txs[j]
		if !a.HasValidDate() {
			return false
		}
		if !b.HasValidDate() {
			return true
		}
		return a.OccurredAt.After(b.OccurredAt)
	})
}

// Group partitions transactions into labeled chronological sections:
// "Today", "Yesterday", then one section per calendar month ("Oct 2025"),
// newest-first, with an "Unknown Date" section at the end when needed.
func Group(txs []domain.Transaction, now time.Time) []Section {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	SortNewestFirst(sorted)

	var sections []Section
	for _, t := range sorted {
		label := sectionLabel(t, now)
		if n := len(sections); n > 0 && sections[n-1].Label == label {
			sections[n-1].Items = append(sections[n-1].Items, t)
			continue
		}
		sections = append(sections, Section{Label: label, Items: []domain.Transaction{t}})
	}
	return sections
}

// sectionLabel picks the bucket for one transaction. The month label uses
// the transaction's own month and year, not the current date.
func sectionLabel(t domain.Transaction, now time.Time) string {
	if !t.HasValidDate() {
		return UnknownDateLabel
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	occurred := t.OccurredAt.In(now.Location())

	switch {
	case !occurred.Before(startOfToday) && occurred.Before(startOfToday.AddDate(0, 0, 1)):
		return "Today"
	case !occurred.Before(startOfToday.AddDate(0, 0, -1)) && occurred.Before(startOfToday):
		return "Yesterday"
	default:
		return occurred.Format("Jan 2006")
	}
}
