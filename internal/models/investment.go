package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment is an immutable record of one capital contribution. Creating
// one always increments the owning member's TotalInvested in the same
// transaction.
type Investment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  uint            `gorm:"not null;index" json:"member_id"`
	Member    *Member         `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Notes     string          `gorm:"type:text" json:"notes"`
	Date      time.Time       `gorm:"index" json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for Investment model
func (Investment) TableName() string {
	return "investments"
}

// CreateInvestmentRequest represents the request to record a contribution
type CreateInvestmentRequest struct {
	MemberID uint            `json:"member_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    string          `json:"notes"`
}
