package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member represents a fund member holding a share of the pooled capital.
type Member struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Email         string          `gorm:"uniqueIndex;not null" json:"email"`
	TotalInvested decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_invested"`
	TotalEarnings decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_earnings"`
	TotalPayouts  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_payouts"`
	IsActive      bool            `gorm:"index" json:"is_active"`
	Investments   []Investment    `gorm:"foreignKey:MemberID" json:"investments,omitempty"`
	Payouts       []Payout        `gorm:"foreignKey:MemberID" json:"payouts,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Member model
func (Member) TableName() string {
	return "members"
}

// CurrentBalance returns the member's withdrawable capital:
// invested + earnings - payouts. Every balance shown or checked anywhere
// in the system must come from here.
func (m *Member) CurrentBalance() decimal.Decimal {
	return m.TotalInvested.Add(m.TotalEarnings).Sub(m.TotalPayouts)
}

// InvestmentShare returns the member's fraction of totalFund.
// Returns zero when the fund is empty.
func (m *Member) InvestmentShare(totalFund decimal.Decimal) decimal.Decimal {
	if totalFund.IsZero() {
		return decimal.Zero
	}
	return m.TotalInvested.DivRound(totalFund, 8)
}

// CreateMemberRequest represents the request to create a new member
type CreateMemberRequest struct {
	Name              string          `json:"name" binding:"required"`
	Email             string          `json:"email" binding:"required,email"`
	InitialInvestment decimal.Decimal `json:"initial_investment"`
}

// UpdateMemberRequest represents the request to update a member's profile
type UpdateMemberRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive *bool  `json:"is_active"`
}

// MemberWithStats is a member enriched with derived fields for API responses
type MemberWithStats struct {
	Member
	InvestmentPercentage float64         `json:"investment_percentage"`
	CurrentBalance       decimal.Decimal `json:"current_balance"`
}

// FundStats aggregates fund-wide totals across all members
type FundStats struct {
	TotalFundSize      decimal.Decimal `json:"total_fund_size"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	ActiveMembersCount int             `json:"active_members_count"`
}
