package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreditType string

const (
	TypeDeposit    CreditType = "DEPOSIT"
	TypeWithdrawal CreditType = "WITHDRAWAL"
	TypeAdvance    CreditType = "ADVANCE"
)

type CreditStatus string

const (
	StatusPending   CreditStatus = "PENDING"
	StatusConfirmed CreditStatus = "CONFIRMED"
	StatusCancelled CreditStatus = "CANCELLED"
)

// Credit is one customer money movement. Cancelled credits stay on record
// but are excluded from the ledger report.
type Credit struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index:ix_credits_org_date" json:"organization_id"`
	CustomerID snowflake.ID `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	Date       time.Time    `gorm:"column:credit_date;not null;index:ix_credits_org_date" json:"date"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Type       CreditType   `gorm:"not null" json:"type"`
	Status     CreditStatus `gorm:"not null;default:PENDING" json:"status"`
	Note       string       `json:"note,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (c Credit) Validate() error {
	if c.Amount <= 0 {
		return ErrInvalidAmount
	}
	switch c.Type {
	case TypeDeposit, TypeWithdrawal, TypeAdvance:
	default:
		return ErrInvalidType
	}
	switch c.Status {
	case StatusPending, StatusConfirmed, StatusCancelled:
	default:
		return ErrInvalidStatus
	}
	return nil
}
