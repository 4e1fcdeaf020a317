package handler

import (
	"context"
	"net/http"

	"github.com/growvest/ledger-engine/internal/referral"
	"github.com/growvest/ledger-engine/internal/transport/httpapi/middleware"
)

// ReferralService is the handler's view of referral stats derivation.
type ReferralService interface {
	ReferralStats(ctx context.Context, userID string) referral.Stats
}

// ReferralHandler serves referral conversion stats.
type ReferralHandler struct {
	svc ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(svc ReferralService) *ReferralHandler {
	return &ReferralHandler{svc: svc}
}

// GetStats handles GET /api/v1/referrals/stats
func (h *ReferralHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	stats := h.svc.ReferralStats(r.Context(), userID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_referrals":         stats.TotalReferrals,
		"active_referrals":        stats.ActiveReferrals,
		"paid_referrals":          stats.PaidReferrals,
		"pending_referrals":       stats.PendingReferrals,
		"conversion_rate_percent": stats.ConversionRatePercent,
	})
}
