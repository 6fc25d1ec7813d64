package services

import (
	"errors"
	"fmt"

	"basilisk-fund/internal/metrics"
	"basilisk-fund/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// moneyPrecision is the decimal scale used for every ledger amount.
const moneyPrecision = 2

// DistributionService splits a resolved bet's signed profit/loss across
// active members in proportion to their invested capital, and undoes prior
// splits when a bet is edited or deleted. Both methods run inside a caller
// transaction obtained from the Ledger.
type DistributionService struct {
	log *zap.Logger
}

func NewDistributionService(log *zap.Logger) *DistributionService {
	return &DistributionService{log: log}
}

// Distribute applies amount across all active members proportional to each
// member's share of invested capital, recording one Allocation row per
// member touched. A zero amount or a fund with zero invested capital is a
// no-op, not an error.
func (s *DistributionService) Distribute(tx *gorm.DB, betID uuid.UUID, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}

	members, totalFund, err := loadActiveMembers(tx)
	if err != nil {
		return err
	}
	if totalFund.IsZero() {
		s.log.Info("distribution skipped: no invested capital",
			zap.String("bet_id", betID.String()))
		return nil
	}

	deltas := proportionalSplit(amount, members, totalFund)
	for i := range members {
		if deltas[i].IsZero() {
			continue
		}
		m := &members[i]
		m.TotalEarnings = m.TotalEarnings.Add(deltas[i])
		if err := tx.Model(m).Update("total_earnings", m.TotalEarnings).Error; err != nil {
			return fmt.Errorf("failed to update earnings for member %d: %w", m.ID, err)
		}

		alloc := models.Allocation{
			ID:       uuid.New(),
			BetID:    betID,
			MemberID: m.ID,
			Amount:   deltas[i],
			FundSize: totalFund,
		}
		if err := tx.Create(&alloc).Error; err != nil {
			return fmt.Errorf("failed to record allocation for member %d: %w", m.ID, err)
		}
	}

	metrics.DistributionsTotal.Inc()
	s.log.Info("distributed profit/loss",
		zap.String("bet_id", betID.String()),
		zap.String("amount", amount.String()),
		zap.String("fund_size", totalFund.String()),
		zap.Int("members", len(members)))
	return nil
}

// Reverse undoes a bet's prior distribution. When Allocation rows exist for
// the bet, each recorded amount is subtracted exactly and the rows are
// removed, regardless of how membership has changed since. Bets allocated
// before allocation tracking existed have no rows; those fall back to a
// proportional recompute of priorProfitLoss against the current active set.
func (s *DistributionService) Reverse(tx *gorm.DB, betID uuid.UUID, priorProfitLoss decimal.Decimal) error {
	var allocs []models.Allocation
	if err := tx.Where("bet_id = ?", betID).Find(&allocs).Error; err != nil {
		return fmt.Errorf("failed to load allocations: %w", err)
	}

	if len(allocs) > 0 {
		for _, a := range allocs {
			var m models.Member
			if err := tx.First(&m, a.MemberID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// member removed since allocation; nothing left to restore
					continue
				}
				return fmt.Errorf("failed to load member %d: %w", a.MemberID, err)
			}
			if err := tx.Model(&m).Update("total_earnings", m.TotalEarnings.Sub(a.Amount)).Error; err != nil {
				return fmt.Errorf("failed to reverse earnings for member %d: %w", m.ID, err)
			}
		}
		if err := tx.Where("bet_id = ?", betID).Delete(&models.Allocation{}).Error; err != nil {
			return fmt.Errorf("failed to clear allocations: %w", err)
		}

		metrics.ReversalsTotal.Inc()
		s.log.Info("reversed recorded allocations",
			zap.String("bet_id", betID.String()),
			zap.Int("allocations", len(allocs)))
		return nil
	}

	if priorProfitLoss.IsZero() {
		return nil
	}

	members, totalFund, err := loadActiveMembers(tx)
	if err != nil {
		return err
	}
	if totalFund.IsZero() {
		return nil
	}

	deltas := proportionalSplit(priorProfitLoss, members, totalFund)
	for i := range members {
		if deltas[i].IsZero() {
			continue
		}
		m := &members[i]
		if err := tx.Model(m).Update("total_earnings", m.TotalEarnings.Sub(deltas[i])).Error; err != nil {
			return fmt.Errorf("failed to reverse earnings for member %d: %w", m.ID, err)
		}
	}

	metrics.ReversalsTotal.Inc()
	s.log.Info("reversed by recompute",
		zap.String("bet_id", betID.String()),
		zap.String("amount", priorProfitLoss.String()))
	return nil
}

// loadActiveMembers returns all allocation-eligible members and their
// combined invested capital.
func loadActiveMembers(tx *gorm.DB) ([]models.Member, decimal.Decimal, error) {
	var members []models.Member
	if err := tx.Where("is_active = ?", true).Order("id").Find(&members).Error; err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load active members: %w", err)
	}

	totalFund := decimal.Zero
	for i := range members {
		totalFund = totalFund.Add(members[i].TotalInvested)
	}
	return members, totalFund, nil
}

// proportionalSplit divides amount by each member's share of totalFund,
// rounded to cents. The rounding residual lands on the largest investor so
// the deltas always sum to exactly amount.
func proportionalSplit(amount decimal.Decimal, members []models.Member, totalFund decimal.Decimal) []decimal.Decimal {
	deltas := make([]decimal.Decimal, len(members))
	allocated := decimal.Zero
	largest := -1

	for i := range members {
		if members[i].TotalInvested.IsPositive() &&
			(largest < 0 || members[i].TotalInvested.GreaterThan(members[largest].TotalInvested)) {
			largest = i
		}
		deltas[i] = amount.Mul(members[i].TotalInvested).DivRound(totalFund, moneyPrecision)
		allocated = allocated.Add(deltas[i])
	}
	if largest >= 0 {
		deltas[largest] = deltas[largest].Add(amount.Sub(allocated))
	}
	return deltas
}
