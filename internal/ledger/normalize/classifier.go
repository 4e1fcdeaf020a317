package normalize

import (
	"strings"

	"github.com/growvest/ledger-engine/internal/ledger/domain"
)

// Classify determines the semantic type for a record from the given origin.
// Commission and withdrawal endpoints are single-purpose, so their origin
// decides outright; payment records need field and text heuristics.
func Classify(origin domain.Origin, rawType, description string) domain.TransactionType {
	switch origin {
	case domain.OriginWithdrawal:
		return domain.TypeWithdrawal
	case domain.OriginCommission:
		return domain.TypeEarning
	}
	return ClassifyPayment(rawType, description)
}

// ClassifyPayment classifies a payment-service record. The earning checks
// run before the withdrawal checks: a record typed COMMISSION, or one whose
// description mentions a commission, is an earning even when other fields
// look debit-like.
func ClassifyPayment(rawType, description string) domain.TransactionType {
	t := strings.ToUpper(strings.TrimSpace(rawType))

	switch t {
	case "CREDIT", "DEPOSIT", "COMMISSION":
		return domain.TypeEarning
	}
	if strings.Contains(strings.ToLower(description), "commission") {
		return domain.TypeEarning
	}

	switch t {
	case "WITHDRAW", "DEBIT":
		return domain.TypeWithdrawal
	}

	// Activation fees, product purchases, everything else.
	return domain.TypePayment
}
