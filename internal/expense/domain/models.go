package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Expense struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index:ix_expenses_org_date" json:"organization_id"`
	CategoryID snowflake.ID `gorm:"column:category_id;not null;index" json:"category_id"`
	Date       time.Time    `gorm:"column:expense_date;not null;index:ix_expenses_org_date" json:"date"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Note       string       `json:"note,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
