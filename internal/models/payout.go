package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payout is an immutable record of one withdrawal. Creating one always
// increments the owning member's TotalPayouts in the same transaction, and
// is rejected when it would drive the member's balance negative.
type Payout struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  uint            `gorm:"not null;index" json:"member_id"`
	Member    *Member         `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Notes     string          `gorm:"type:text" json:"notes"`
	Date      time.Time       `gorm:"index" json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for Payout model
func (Payout) TableName() string {
	return "payouts"
}

// CreatePayoutRequest represents the request to record a withdrawal
type CreatePayoutRequest struct {
	MemberID uint            `json:"member_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    string          `json:"notes"`
}
