package services

import (
	"context"
	"fmt"

	"basilisk-fund/internal/metrics"
	"basilisk-fund/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconciliationService rebuilds every member's total earnings from the
// complete set of resolved bets, discarding the incremental distribution
// history. It answers a different question than the distribution engine:
// ground truth for the whole fund, not the marginal effect of one bet.
//
// Reconciliation deliberately splits net profit by each member's current
// invested capital, not a time-weighted history. It will not reproduce the
// incremental allocations exactly when investment levels changed between
// bets; that is the intended model, not drift.
type ReconciliationService struct {
	ledger *Ledger
	log    *zap.Logger
}

func NewReconciliationService(ledger *Ledger, log *zap.Logger) *ReconciliationService {
	return &ReconciliationService{ledger: ledger, log: log}
}

// EarningsUpdate describes the correction applied to one member.
type EarningsUpdate struct {
	MemberID         uint            `json:"member_id"`
	MemberName       string          `json:"member_name"`
	PreviousEarnings decimal.Decimal `json:"previous_earnings"`
	CorrectEarnings  decimal.Decimal `json:"correct_earnings"`
	Difference       decimal.Decimal `json:"difference"`
}

// RecalculationReport lets the caller audit a reconciliation run.
type RecalculationReport struct {
	TotalWins     decimal.Decimal  `json:"total_wins"`
	TotalLosses   decimal.Decimal  `json:"total_losses"`
	NetProfit     decimal.Decimal  `json:"net_profit"`
	TotalFundSize decimal.Decimal  `json:"total_fund_size"`
	Updates       []EarningsUpdate `json:"updates"`
}

// Reconcile recomputes earnings for every member, active or not, from all
// resolved bets, overwriting whatever the incremental engine accumulated.
// Running it twice in a row with no intervening bet changes leaves all
// earnings unchanged. A fund with zero invested capital reports zero
// updates without error.
func (s *ReconciliationService) Reconcile(ctx context.Context) (*RecalculationReport, error) {
	report := &RecalculationReport{Updates: []EarningsUpdate{}}

	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		var bets []models.Bet
		if err := tx.Find(&bets).Error; err != nil {
			return fmt.Errorf("failed to load bets: %w", err)
		}
		for i := range bets {
			b := &bets[i]
			switch {
			case b.Outcome == models.BetOutcomeWon && b.ProfitLoss.IsPositive():
				report.TotalWins = report.TotalWins.Add(b.ProfitLoss)
			case b.Outcome == models.BetOutcomeLost && b.ProfitLoss.IsNegative():
				report.TotalLosses = report.TotalLosses.Add(b.ProfitLoss)
			}
		}
		report.NetProfit = report.TotalWins.Add(report.TotalLosses)

		var members []models.Member
		if err := tx.Order("id").Find(&members).Error; err != nil {
			return fmt.Errorf("failed to load members: %w", err)
		}
		for i := range members {
			report.TotalFundSize = report.TotalFundSize.Add(members[i].TotalInvested)
		}
		if report.TotalFundSize.IsZero() {
			s.log.Info("reconciliation skipped: no invested capital")
			return nil
		}

		// The incremental history no longer describes the rebuilt state;
		// later reversals of old bets recompute proportionally instead.
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Allocation{}).Error; err != nil {
			return fmt.Errorf("failed to clear allocations: %w", err)
		}

		for i := range members {
			m := &members[i]
			// Update assigns the new value back onto m, so snapshot first.
			prev := m.TotalEarnings
			correct := report.NetProfit.Mul(m.TotalInvested).DivRound(report.TotalFundSize, moneyPrecision)
			if err := tx.Model(m).Update("total_earnings", correct).Error; err != nil {
				return fmt.Errorf("failed to update earnings for member %d: %w", m.ID, err)
			}
			report.Updates = append(report.Updates, EarningsUpdate{
				MemberID:         m.ID,
				MemberName:       m.Name,
				PreviousEarnings: prev,
				CorrectEarnings:  correct,
				Difference:       correct.Sub(prev),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReconciliationsTotal.Inc()
	s.log.Info("reconciliation complete",
		zap.String("net_profit", report.NetProfit.String()),
		zap.String("fund_size", report.TotalFundSize.String()),
		zap.Int("members_updated", len(report.Updates)))
	return report, nil
}

// ResetEarnings zeroes every member's total earnings and clears the
// allocation history, for full rebuild-from-scratch workflows.
func (s *ReconciliationService) ResetEarnings(ctx context.Context) error {
	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Model(&models.Member{}).Update("total_earnings", decimal.Zero).Error; err != nil {
			return fmt.Errorf("failed to reset earnings: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Allocation{}).Error; err != nil {
			return fmt.Errorf("failed to clear allocations: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("all earnings reset to zero")
	return nil
}
