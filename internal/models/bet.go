package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bet outcome values
const (
	BetOutcomePending = "pending"
	BetOutcomeWon     = "won"
	BetOutcomeLost    = "lost"
)

// Bet represents a single bet placed by the fund. Bets are top-level
// records: their effect on members is carried by the earnings allocations,
// not by per-member ownership.
type Bet struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Outcome     string          `gorm:"size:20;not null;default:pending;index" json:"outcome"`
	ProfitLoss  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"profit_loss"`
	DatePlaced  time.Time       `gorm:"index" json:"date_placed"`
	Notes       string          `gorm:"type:text" json:"notes"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Bet model
func (Bet) TableName() string {
	return "bets"
}

// Resolved reports whether the bet has a settled outcome.
func (b *Bet) Resolved() bool {
	return b.Outcome == BetOutcomeWon || b.Outcome == BetOutcomeLost
}

// Distributable reports whether the bet carries a profit/loss that must be
// allocated across members. A pending bet, or a resolved bet with zero
// profit/loss, has no ledger effect.
func (b *Bet) Distributable() bool {
	return b.Resolved() && !b.ProfitLoss.IsZero()
}

// CreateBetRequest represents the request to record a new bet
type CreateBetRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Outcome     string          `json:"outcome"`
	ProfitLoss  decimal.Decimal `json:"profit_loss"`
	DatePlaced  *time.Time      `json:"date_placed"`
	Notes       string          `json:"notes"`
	ImageURL    string          `json:"image_url"`
}

// UpdateBetRequest represents the request to edit an existing bet
type UpdateBetRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Outcome     string          `json:"outcome" binding:"required"`
	ProfitLoss  decimal.Decimal `json:"profit_loss"`
	Notes       string          `json:"notes"`
	ImageURL    string          `json:"image_url"`
}

// BetStats aggregates bet history for dashboards
type BetStats struct {
	TotalBets     int             `json:"total_bets"`
	TotalWinnings decimal.Decimal `json:"total_winnings"`
	TotalLosses   decimal.Decimal `json:"total_losses"`
	PendingBets   int             `json:"pending_bets"`
	WinRate       float64         `json:"win_rate"`
}
