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

// MemberService manages member records and their derived views. Mutations
// that touch ledger fields go through the shared ledger lock.
type MemberService struct {
	ledger *Ledger
	log    *zap.Logger
}

func NewMemberService(ledger *Ledger, log *zap.Logger) *MemberService {
	return &MemberService{ledger: ledger, log: log}
}

// List returns all members with their investment percentage and current
// balance, plus fund-wide totals.
func (s *MemberService) List(ctx context.Context) ([]models.MemberWithStats, *models.FundStats, error) {
	var members []models.Member
	if err := s.ledger.DB().WithContext(ctx).
		Preload("Investments").
		Preload("Payouts").
		Order("id").
		Find(&members).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	stats := &models.FundStats{}
	for i := range members {
		stats.TotalFundSize = stats.TotalFundSize.Add(members[i].TotalInvested)
		stats.TotalEarnings = stats.TotalEarnings.Add(members[i].TotalEarnings)
		if members[i].IsActive {
			stats.ActiveMembersCount++
		}
	}

	enriched := make([]models.MemberWithStats, len(members))
	for i := range members {
		m := members[i]
		share, _ := m.InvestmentShare(stats.TotalFundSize).Float64()
		enriched[i] = models.MemberWithStats{
			Member:               m,
			InvestmentPercentage: share * 100,
			CurrentBalance:       m.CurrentBalance(),
		}
	}
	return enriched, stats, nil
}

// Get returns one member with investment and payout history preloaded.
func (s *MemberService) Get(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := s.ledger.DB().WithContext(ctx).
		Preload("Investments").
		Preload("Payouts").
		First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &member, nil
}

// Create adds a member. A positive initial investment also writes the
// paired Investment record in the same transaction.
func (s *MemberService) Create(ctx context.Context, req models.CreateMemberRequest) (*models.Member, error) {
	if req.InitialInvestment.Sign() < 0 {
		return nil, fmt.Errorf("initial investment %s: %w", req.InitialInvestment, ErrInvalidAmount)
	}

	member := models.Member{
		Name:          req.Name,
		Email:         req.Email,
		TotalInvested: req.InitialInvestment,
		IsActive:      true,
	}

	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create member: %w", err)
		}
		if req.InitialInvestment.IsPositive() {
			investment := models.Investment{
				ID:       uuid.New(),
				MemberID: member.ID,
				Amount:   req.InitialInvestment,
				Notes:    "Initial investment",
				Date:     time.Now(),
			}
			if err := tx.Create(&investment).Error; err != nil {
				return fmt.Errorf("failed to record initial investment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("member created",
		zap.Uint("member_id", member.ID),
		zap.String("initial_investment", req.InitialInvestment.String()))
	return &member, nil
}

// Update edits a member's profile and eligibility flag. Deactivating a
// member only removes them from future allocations; accumulated fields are
// untouched.
func (s *MemberService) Update(ctx context.Context, id uint, req models.UpdateMemberRequest) (*models.Member, error) {
	var member models.Member
	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member %d: %w", id, ErrNotFound)
			}
			return err
		}
		if req.Name != "" {
			member.Name = req.Name
		}
		if req.Email != "" {
			member.Email = req.Email
		}
		if req.IsActive != nil {
			member.IsActive = *req.IsActive
		}
		if err := tx.Save(&member).Error; err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete removes a member together with their investments, payouts and
// recorded allocations.
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member %d: %w", id, ErrNotFound)
			}
			return err
		}

		if err := tx.Where("member_id = ?", id).Delete(&models.Investment{}).Error; err != nil {
			return fmt.Errorf("failed to delete investments: %w", err)
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.Payout{}).Error; err != nil {
			return fmt.Errorf("failed to delete payouts: %w", err)
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.Allocation{}).Error; err != nil {
			return fmt.Errorf("failed to delete allocations: %w", err)
		}
		if err := tx.Delete(&member).Error; err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("member deleted", zap.Uint("member_id", id))
	return nil
}
