// Package service orchestrates the ledger pipeline: it fans out to the
// platform backend's record endpoints, normalizes and classifies what comes
// back, and derives the aggregates the presentation layer displays. A failed
// source degrades only its own contribution; the pipeline itself never
// fails.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/growvest/ledger-engine/internal/ledger/aggregate"
	"github.com/growvest/ledger-engine/internal/ledger/domain"
	"github.com/growvest/ledger-engine/internal/ledger/fallback"
	"github.com/growvest/ledger-engine/internal/ledger/normalize"
	"github.com/growvest/ledger-engine/internal/referral"
	"github.com/growvest/ledger-engine/pkg/logger"
	"github.com/growvest/ledger-engine/pkg/money"
)

// Service builds ledger snapshots and derived aggregates for one user at a
// time. It holds no per-user state: every call recomputes from backend
// responses, and re-running a build replaces rather than merges results.
type Service struct {
	platform PlatformSource
	balances BalanceCache
	logger   *logger.Logger
	now      func() time.Time
}

// New creates a ledger service.
func New(platform PlatformSource, balances BalanceCache, log *logger.Logger) *Service {
	return &Service{
		platform: platform,
		balances: balances,
		logger:   log.WithField("component", "ledger"),
		now:      time.Now,
	}
}

// Overview is the dashboard projection: summary figures, tier progress, and
// the wallet balance resolved through its fallback ladder.
type Overview struct {
	SnapshotID    uuid.UUID
	Summary       aggregate.Summary
	TierProgress  referral.Progress
	WalletBalance money.Amount
	GeneratedAt   time.Time
}

// BuildSnapshot fetches the three record sources concurrently and unifies
// them into one normalized, classified, ownership-filtered transaction
// list, newest first. Failed sources are logged, flagged as degraded, and
// contribute nothing; BuildSnapshot itself never fails.
func (s *Service) BuildSnapshot(ctx context.Context, userID string) *domain.Snapshot {
	var (
		payments    []normalize.RawPaymentRecord
		commissions []normalize.RawCommissionRecord
		withdrawals []normalize.RawWithdrawalRecord

		paymentsErr    error
		commissionsErr error
		withdrawalsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		payments, paymentsErr = s.platform.PaymentHistory(gctx, userID)
		return nil
	})
	g.Go(func() error {
		commissions, commissionsErr = s.platform.CommissionHistory(gctx, userID)
		return nil
	})
	g.Go(func() error {
		withdrawals, withdrawalsErr = s.platform.WithdrawalHistory(gctx, userID)
		return nil
	})
	_ = g.Wait()

	snapshot := &domain.Snapshot{
		ID:          uuid.New(),
		UserID:      userID,
		GeneratedAt: s.now(),
	}

	if paymentsErr != nil {
		s.logger.Warn("payment history unavailable", "user_id", userID, "error", paymentsErr)
		snapshot.Degraded = append(snapshot.Degraded, domain.OriginPayment)
	}
	if commissionsErr != nil {
		s.logger.Warn("commission history unavailable", "user_id", userID, "error", commissionsErr)
		snapshot.Degraded = append(snapshot.Degraded, domain.OriginCommission)
	}
	if withdrawalsErr != nil {
		s.logger.Warn("withdrawal history unavailable", "user_id", userID, "error", withdrawalsErr)
		snapshot.Degraded = append(snapshot.Degraded, domain.OriginWithdrawal)
	}

	txs := normalize.Payments(payments)
	txs = append(txs, normalize.Commissions(normalize.OwnCommissions(commissions, userID))...)
	txs = append(txs, normalize.Withdrawals(withdrawals)...)
	aggregate.SortNewestFirst(txs)

	snapshot.Transactions = txs
	return snapshot
}

// Transactions builds a snapshot and narrows it by type and period.
func (s *Service) Transactions(ctx context.Context, userID string, txType domain.TransactionType, period aggregate.Period) (*domain.Snapshot, []domain.Transaction) {
	snapshot := s.BuildSnapshot(ctx, userID)
	return snapshot, aggregate.Filter(snapshot.Transactions, txType, period, s.now())
}

// Grouped builds a snapshot and partitions it into chronological sections.
func (s *Service) Grouped(ctx context.Context, userID string) (*domain.Snapshot, []aggregate.Section) {
	snapshot := s.BuildSnapshot(ctx, userID)
	return snapshot, aggregate.Group(snapshot.Transactions, s.now())
}

// Overview assembles the dashboard figures. The snapshot build, the
// progress fetch, and the tier-structure fetch run concurrently; each
// degrades independently.
func (s *Service) Overview(ctx context.Context, userID string) *Overview {
	var (
		snapshot *domain.Snapshot
		snap     *ProgressSnapshot
		tiers    []referral.TierThreshold

		snapErr  error
		tiersErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshot = s.BuildSnapshot(gctx, userID)
		return nil
	})
	g.Go(func() error {
		snap, snapErr = s.platform.UserProgress(gctx, userID)
		return nil
	})
	g.Go(func() error {
		tiers, tiersErr = s.platform.TierStructure(gctx)
		return nil
	})
	_ = g.Wait()

	if tiersErr != nil {
		s.logger.Warn("tier structure unavailable, using fallback table", "error", tiersErr)
	}
	tierTable, _ := fallback.Resolve(ctx,
		func(context.Context) ([]referral.TierThreshold, error) {
			if tiersErr != nil || len(tiers) == 0 {
				return nil, fmt.Errorf("tier structure unavailable")
			}
			return tiers, nil
		},
		fallback.Fixed(referral.DefaultTierTable()),
	)

	var progressIn referral.ProgressInput
	if snapErr != nil {
		s.logger.Warn("user progress unavailable", "user_id", userID, "error", snapErr)
	} else if snap != nil {
		progressIn = referral.ProgressInput{
			TierName:      snap.TierName,
			LevelNumber:   snap.LevelNumber,
			ReferralCount: snap.ReferralCount,
		}
	}

	return &Overview{
		SnapshotID:    snapshot.ID,
		Summary:       aggregate.Summarize(snapshot.Transactions, s.now()),
		TierProgress:  referral.ComputeProgress(progressIn, tierTable),
		WalletBalance: s.resolveBalance(ctx, userID, snap, snapErr),
		GeneratedAt:   snapshot.GeneratedAt,
	}
}

// resolveBalance runs the wallet-balance fallback ladder: live progress
// snapshot, then the cached balance, then zero. A successful live value is
// written through to the cache for the next degradation.
func (s *Service) resolveBalance(ctx context.Context, userID string, snap *ProgressSnapshot, snapErr error) money.Amount {
	balance, err := fallback.Resolve(ctx,
		func(ctx context.Context) (money.Amount, error) {
			if snapErr != nil {
				return money.Zero(), snapErr
			}
			if snap == nil {
				return money.Zero(), fmt.Errorf("no progress snapshot")
			}
			if cacheErr := s.balances.SetBalance(ctx, userID, snap.WalletBalance); cacheErr != nil {
				s.logger.Warn("failed to cache wallet balance", "user_id", userID, "error", cacheErr)
			}
			return snap.WalletBalance, nil
		},
		func(ctx context.Context) (money.Amount, error) {
			cached, found, cacheErr := s.balances.GetBalance(ctx, userID)
			if cacheErr != nil {
				return money.Zero(), cacheErr
			}
			if !found {
				return money.Zero(), fmt.Errorf("no cached balance for user")
			}
			s.logger.Info("serving cached wallet balance", "user_id", userID)
			return cached, nil
		},
		fallback.Fixed(money.Zero()),
	)
	if err != nil {
		// Unreachable while the ladder ends in a fixed rung; kept so a
		// ladder change cannot silently drop errors.
		s.logger.Warn("balance ladder exhausted", "user_id", userID, "error", err)
	}
	return balance
}

// ReferralStats fetches the referral list and derives conversion counters.
// An unavailable referral endpoint degrades to zeroed stats.
func (s *Service) ReferralStats(ctx context.Context, userID string) referral.Stats {
	page, err := s.platform.Referrals(ctx, userID)
	if err != nil || page == nil {
		s.logger.Warn("referral list unavailable", "user_id", userID, "error", err)
		return referral.Stats{}
	}
	return referral.ComputeStats(page.Referrals, page.ReferralCount)
}
