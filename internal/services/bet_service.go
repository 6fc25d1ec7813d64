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

// BetService owns the bet lifecycle. Every resolution-affecting transition
// (create-resolved, edit, delete-of-resolved) produces exactly one
// distribution effect, applied in the same ledger transaction as the bet
// mutation itself.
type BetService struct {
	ledger *Ledger
	dist   *DistributionService
	log    *zap.Logger
}

func NewBetService(ledger *Ledger, dist *DistributionService, log *zap.Logger) *BetService {
	return &BetService{ledger: ledger, dist: dist, log: log}
}

// List returns all bets, newest first, with aggregate stats.
func (s *BetService) List(ctx context.Context) ([]models.Bet, *models.BetStats, error) {
	var bets []models.Bet
	if err := s.ledger.DB().WithContext(ctx).Order("date_placed DESC").Find(&bets).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list bets: %w", err)
	}
	return bets, betStats(bets), nil
}

// Get returns a single bet by id.
func (s *BetService) Get(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	if err := s.ledger.DB().WithContext(ctx).First(&bet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("bet %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &bet, nil
}

// Create persists a new bet. A bet created already resolved with a nonzero
// profit/loss is distributed once, atomically with its insertion.
func (s *BetService) Create(ctx context.Context, req models.CreateBetRequest) (*models.Bet, error) {
	outcome := req.Outcome
	if outcome == "" {
		outcome = models.BetOutcomePending
	}
	if err := validateBet(outcome, req); err != nil {
		return nil, err
	}

	placed := time.Now()
	if req.DatePlaced != nil {
		placed = *req.DatePlaced
	}

	bet := models.Bet{
		ID:          uuid.New(),
		Description: req.Description,
		Amount:      req.Amount,
		Outcome:     outcome,
		ProfitLoss:  req.ProfitLoss,
		DatePlaced:  placed,
		Notes:       req.Notes,
		ImageURL:    req.ImageURL,
	}

	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&bet).Error; err != nil {
			return fmt.Errorf("failed to create bet: %w", err)
		}
		if bet.Distributable() {
			return s.dist.Distribute(tx, bet.ID, bet.ProfitLoss)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bet created",
		zap.String("bet_id", bet.ID.String()),
		zap.String("outcome", bet.Outcome),
		zap.String("profit_loss", bet.ProfitLoss.String()))
	return &bet, nil
}

// Update edits a bet. A previously applied distribution is reversed first,
// then the new fields are persisted, then the new profit/loss is
// distributed when it qualifies. Skipping either step (pending bet, zero
// profit/loss) is a valid path.
func (s *BetService) Update(ctx context.Context, id uuid.UUID, req models.UpdateBetRequest) (*models.Bet, error) {
	if err := validateBet(req.Outcome, models.CreateBetRequest{
		Amount:     req.Amount,
		Outcome:    req.Outcome,
		ProfitLoss: req.ProfitLoss,
	}); err != nil {
		return nil, err
	}

	var bet models.Bet
	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&bet, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("bet %s: %w", id, ErrNotFound)
			}
			return err
		}

		if bet.Distributable() {
			if err := s.dist.Reverse(tx, bet.ID, bet.ProfitLoss); err != nil {
				return err
			}
		}

		bet.Description = req.Description
		bet.Amount = req.Amount
		bet.Outcome = req.Outcome
		bet.ProfitLoss = req.ProfitLoss
		bet.Notes = req.Notes
		bet.ImageURL = req.ImageURL
		if err := tx.Save(&bet).Error; err != nil {
			return fmt.Errorf("failed to update bet: %w", err)
		}

		if bet.Distributable() {
			return s.dist.Distribute(tx, bet.ID, bet.ProfitLoss)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bet updated",
		zap.String("bet_id", bet.ID.String()),
		zap.String("outcome", bet.Outcome),
		zap.String("profit_loss", bet.ProfitLoss.String()))
	return &bet, nil
}

// Delete reverses the bet's distribution if one was applied, then removes
// the bet record.
func (s *BetService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.ledger.Write(ctx, func(tx *gorm.DB) error {
		var bet models.Bet
		if err := tx.First(&bet, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("bet %s: %w", id, ErrNotFound)
			}
			return err
		}

		if bet.Distributable() {
			if err := s.dist.Reverse(tx, bet.ID, bet.ProfitLoss); err != nil {
				return err
			}
		}
		if err := tx.Delete(&bet).Error; err != nil {
			return fmt.Errorf("failed to delete bet: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("bet deleted", zap.String("bet_id", id.String()))
	return nil
}

// validateBet enforces the outcome/profit-loss invariants:
// pending bets carry zero profit/loss, won bets non-negative, lost bets
// non-positive.
func validateBet(outcome string, req models.CreateBetRequest) error {
	if req.Amount.Sign() < 0 {
		return fmt.Errorf("stake %s: %w", req.Amount, ErrInvalidAmount)
	}
	switch outcome {
	case models.BetOutcomePending:
		if !req.ProfitLoss.IsZero() {
			return fmt.Errorf("pending bet with profit/loss %s: %w", req.ProfitLoss, ErrProfitLossMismatch)
		}
	case models.BetOutcomeWon:
		if req.ProfitLoss.Sign() < 0 {
			return fmt.Errorf("won bet with negative profit/loss %s: %w", req.ProfitLoss, ErrProfitLossMismatch)
		}
	case models.BetOutcomeLost:
		if req.ProfitLoss.Sign() > 0 {
			return fmt.Errorf("lost bet with positive profit/loss %s: %w", req.ProfitLoss, ErrProfitLossMismatch)
		}
	default:
		return fmt.Errorf("outcome %q: %w", outcome, ErrInvalidOutcome)
	}
	return nil
}

func betStats(bets []models.Bet) *models.BetStats {
	stats := &models.BetStats{TotalBets: len(bets)}
	won, resolved := 0, 0
	for i := range bets {
		b := &bets[i]
		switch b.Outcome {
		case models.BetOutcomeWon:
			stats.TotalWinnings = stats.TotalWinnings.Add(b.ProfitLoss)
			won++
			resolved++
		case models.BetOutcomeLost:
			stats.TotalLosses = stats.TotalLosses.Add(b.ProfitLoss)
			resolved++
		case models.BetOutcomePending:
			stats.PendingBets++
		}
	}
	stats.TotalLosses = stats.TotalLosses.Abs()
	if resolved > 0 {
		stats.WinRate = float64(won) / float64(resolved) * 100
	}
	return stats
}
