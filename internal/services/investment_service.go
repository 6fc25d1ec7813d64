package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basilisk-fund/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InvestmentService records capital contributions.
type InvestmentService struct {
	ledger *Ledger
	log    *zap.Logger
}

func NewInvestmentService(ledger *Ledger, log *zap.Logger) *InvestmentService {
	return &InvestmentService{ledger: ledger, log: log}
}

// List returns all investments, newest first.
func (s *InvestmentService) List(ctx context.Context) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.ledger.DB().WithContext(ctx).
		Preload("Member").
		Order("date DESC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}

// Create appends an investment record and increments the owning member's
// total invested capital in the same transaction.
func (s *InvestmentService) Create(ctx context.Context, req models.CreateInvestmentRequest) (*models.Investment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("investment %s: %w", req.Amount, ErrInvalidAmount)
	}

	investment := models.Investment{
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

		if err := tx.Create(&investment).Error; err != nil {
			return fmt.Errorf("failed to create investment: %w", err)
		}
		if err := tx.Model(&member).
			Update("total_invested", member.TotalInvested.Add(req.Amount)).Error; err != nil {
			return fmt.Errorf("failed to update total invested: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("investment recorded",
		zap.Uint("member_id", req.MemberID),
		zap.String("amount", req.Amount.String()))
	return &investment, nil
}
