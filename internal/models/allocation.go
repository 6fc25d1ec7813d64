package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation records the exact slice of a bet's profit/loss applied to one
// member, with the fund size snapshot used to compute it. Reversing a bet
// subtracts these recorded amounts instead of recomputing shares under
// whatever the membership looks like at reversal time.
type Allocation struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BetID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"bet_id"`
	MemberID  uint            `gorm:"not null;index" json:"member_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	FundSize  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"fund_size"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for Allocation model
func (Allocation) TableName() string {
	return "allocations"
}
