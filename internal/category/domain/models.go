package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type CategoryKind string

const (
	KindSupply  CategoryKind = "SUPPLY"
	KindExpense CategoryKind = "EXPENSE"
)

// Category labels supply and expense records; invoice supply lines and the
// profit-loss expense breakdown group by it.
type Category struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	Name      string       `gorm:"not null" json:"name"`
	Kind      CategoryKind `gorm:"not null" json:"kind"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
