package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basilisk-fund/internal/metrics"
	"basilisk-fund/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PayoutService records withdrawals. Authorization reads the member's
// balance under the ledger lock, so a payout can never be approved against
// a balance that an in-flight distribution is about to change.
type PayoutService struct {
	ledger *Ledger
	log    *zap.Logger
}

func NewPayoutService(ledger *Ledger, log *zap.Logger) *PayoutService {
	return &PayoutService{ledger: ledger, log: log}
}

// List returns all payouts, newest first.
func (s *PayoutService) List(ctx context.Context) ([]models.Payout, error) {
	var payouts []models.Payout
	if err := s.ledger.DB().WithContext(ctx).
		Preload("Member").
		Order("date DESC").
		Find(&payouts).Error; err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

// Create appends a payout record and increments the owning member's total
// payouts. Rejected before any mutation when the amount exceeds the
// member's current balance.
func (s *PayoutService) Create(ctx context.Context, req models.CreatePayoutRequest) (*models.Payout, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payout %s: %w", req.Amount, ErrInvalidAmount)
	}

	payout := models.Payout{
		ID:       uuid.New(),
		MemberID: req.MemberID,
		Amount:   req.Amount,
		Notes:    req.Notes,
		Date:     time.Now(),
	}

	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.First(&member, req.MemberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member %d: %w", req.MemberID, ErrNotFound)
			}
			return err
		}

		balance := member.CurrentBalance()
		if req.Amount.GreaterThan(balance) {
			metrics.PayoutsRejectedTotal.Inc()
			return fmt.Errorf("balance %s, requested %s: %w", balance, req.Amount, ErrInsufficientBalance)
		}

		if err := tx.Create(&payout).Error; err != nil {
			return fmt.Errorf("failed to create payout: %w", err)
		}
		if err := tx.Model(&member).
			Update("total_payouts", member.TotalPayouts.Add(req.Amount)).Error; err != nil {
			return fmt.Errorf("failed to update total payouts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payout recorded",
		zap.Uint("member_id", req.MemberID),
		zap.String("amount", req.Amount.String()))
	return &payout, nil
}
