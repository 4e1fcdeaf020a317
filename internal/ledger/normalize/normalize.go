package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/growvest/ledger-engine/internal/ledger/domain"
)

// timestampLayouts are tried in order when parsing backend timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Payments converts raw payment records one-to-one into transactions,
// classifying each by its type field and description text.
func Payments(records []RawPaymentRecord) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(records))
	for i, r := range records {
		txType := ClassifyPayment(r.Type, r.Description)

		title := strings.TrimSpace(r.Description)
		if title == "" {
			title = "Payment"
		}

		result = append(result, domain.Transaction{
			ID:          transactionID(domain.OriginPayment, r.ID, i),
			Origin:      domain.OriginPayment,
			Type:        txType,
			Title:       title,
			Description: r.Description,
			Amount:      r.Amount.Abs(),
			Status:      normalizeStatus(r.Status),
			OccurredAt:  parseTimestamp(r.CreatedAt, r.Date, r.Timestamp),
			Raw:         r,
		})
	}
	return result
}

// Commissions converts raw commission records one-to-one into earning
// transactions. Ownership filtering happens before this step; every record
// reaching the normalizer belongs to the viewing user.
func Commissions(records []RawCommissionRecord) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(records))
	for i, r := range records {
		title := "Referral Commission"
		if r.ReferralLevel > 0 {
			title = fmt.Sprintf("Level %d Commission", r.ReferralLevel)
		}

		result = append(result, domain.Transaction{
			ID:          transactionID(domain.OriginCommission, r.ID, i),
			Origin:      domain.OriginCommission,
			Type:        domain.TypeEarning,
			Title:       title,
			Description: fmt.Sprintf("Commission earned from referral %s", r.ReferredUserID),
			Amount:      r.CommissionAmount.Abs(),
			Status:      normalizeStatus(r.CommissionStatus),
			OccurredAt:  parseTimestamp(r.CreatedAt, r.Date, r.Timestamp),
			Raw:         r,
		})
	}
	return result
}

// Withdrawals converts raw withdrawal records one-to-one into withdrawal
// transactions.
func Withdrawals(records []RawWithdrawalRecord) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(records))
	for i, r := range records {
		description := r.Description
		if description == "" {
			description = r.StatusDisplay
		}

		result = append(result, domain.Transaction{
			ID:          transactionID(domain.OriginWithdrawal, r.ID, i),
			Origin:      domain.OriginWithdrawal,
			Type:        domain.TypeWithdrawal,
			Title:       "Withdrawal",
			Description: description,
			Amount:      r.Amount.Abs(),
			Status:      normalizeStatus(r.Status),
			OccurredAt:  parseTimestamp(r.CreatedAt, r.Date, r.Timestamp),
			Raw:         r,
		})
	}
	return result
}

// transactionID derives a session-unique id from the source id and origin
// tag. Ids from different endpoints may collide with each other; the origin
// prefix keeps them distinct. A record without an id falls back to its
// position in the response.
func transactionID(origin domain.Origin, sourceID string, index int) string {
	if sourceID == "" {
		return fmt.Sprintf("%s-%d", origin, index)
	}
	return fmt.Sprintf("%s-%s", origin, sourceID)
}

// normalizeStatus collapses the per-endpoint status vocabularies into the
// three normalized statuses. Unknown or absent statuses default to
// completed: a malformed record is absorbed, not discarded.
func normalizeStatus(s string) domain.Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING", "PROCESSING", "IN_REVIEW":
		return domain.StatusProcessing
	case "FAILED", "REJECTED", "CANCELLED":
		return domain.StatusFailed
	default:
		// SUCCESS, PAID, APPROVED, COMPLETED and anything unrecognized
		return domain.StatusCompleted
	}
}

// parseTimestamp tries each candidate field in order and each known layout
// per field. All-unparsable input yields the zero time, the invalid-date
// sentinel; parsing never fails a record.
func parseTimestamp(candidates ...string) time.Time {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
