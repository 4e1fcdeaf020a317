// Package platform implements the HTTP client for the wealth-platform
// backend endpoints the engine aggregates over.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/growvest/ledger-engine/internal/ledger/normalize"
	"github.com/growvest/ledger-engine/internal/ledger/service"
	"github.com/growvest/ledger-engine/internal/referral"
)

const (
	headerAPIKey   = "X-Api-Key"
	requestTimeout = 10 * time.Second
)

// Client is a platform backend API client. It implements
// service.PlatformSource.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new platform API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// listEnvelope is the standard list response shape of the platform API.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// PaymentHistory fetches the user's raw payment records.
func (c *Client) PaymentHistory(ctx context.Context, userID string) ([]normalize.RawPaymentRecord, error) {
	var envelope listEnvelope[normalize.RawPaymentRecord]
	if err := c.get(ctx, c.userPath(userID, "payments"), &envelope); err != nil {
		return nil, fmt.Errorf("payment history: %w", err)
	}
	return envelope.Data, nil
}

// CommissionHistory fetches the user's raw commission records.
func (c *Client) CommissionHistory(ctx context.Context, userID string) ([]normalize.RawCommissionRecord, error) {
	var envelope listEnvelope[normalize.RawCommissionRecord]
	if err := c.get(ctx, c.userPath(userID, "commissions"), &envelope); err != nil {
		return nil, fmt.Errorf("commission history: %w", err)
	}
	return envelope.Data, nil
}

// WithdrawalHistory fetches the user's raw withdrawal records.
func (c *Client) WithdrawalHistory(ctx context.Context, userID string) ([]normalize.RawWithdrawalRecord, error) {
	var envelope listEnvelope[normalize.RawWithdrawalRecord]
	if err := c.get(ctx, c.userPath(userID, "withdrawals"), &envelope); err != nil {
		return nil, fmt.Errorf("withdrawal history: %w", err)
	}
	return envelope.Data, nil
}

// UserProgress fetches the user's tier/level/balance snapshot.
func (c *Client) UserProgress(ctx context.Context, userID string) (*service.ProgressSnapshot, error) {
	var snap service.ProgressSnapshot
	if err := c.get(ctx, c.userPath(userID, "progress"), &snap); err != nil {
		return nil, fmt.Errorf("user progress: %w", err)
	}
	return &snap, nil
}

// rawTier is the tier-structure response shape: each tier carries its
// levels, whose first entry holds the tier's entry threshold.
type rawTier struct {
	Name   string `json:"name"`
	Levels []struct {
		RequiredReferrals int `json:"requiredReferrals"`
	} `json:"levels"`
}

// TierStructure fetches the tier ladder and reduces it to per-tier entry
// thresholds.
func (c *Client) TierStructure(ctx context.Context) ([]referral.TierThreshold, error) {
	var envelope listEnvelope[rawTier]
	if err := c.get(ctx, "/v1/tiers", &envelope); err != nil {
		return nil, fmt.Errorf("tier structure: %w", err)
	}

	table := make([]referral.TierThreshold, 0, len(envelope.Data))
	for _, tier := range envelope.Data {
		threshold := referral.TierThreshold{Name: tier.Name}
		if len(tier.Levels) > 0 {
			threshold.MinReferrals = tier.Levels[0].RequiredReferrals
		}
		table = append(table, threshold)
	}
	return table, nil
}

// Referrals fetches the user's raw referral list together with the
// backend's authoritative paid-referral count.
func (c *Client) Referrals(ctx context.Context, userID string) (*service.ReferralPage, error) {
	var page service.ReferralPage
	if err := c.get(ctx, c.userPath(userID, "referrals"), &page); err != nil {
		return nil, fmt.Errorf("referrals: %w", err)
	}
	return &page, nil
}

func (c *Client) userPath(userID, resource string) string {
	return fmt.Sprintf("/v1/users/%s/%s", url.PathEscape(userID), resource)
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
