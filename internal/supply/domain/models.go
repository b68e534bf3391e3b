package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Supply is one purchased item billed onward to the client. Quantity
// defaults to 1 and is never fractional.
type Supply struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index:ix_supplies_org_date" json:"organization_id"`
	CategoryID snowflake.ID `gorm:"column:category_id;not null;index" json:"category_id"`
	Name       string       `gorm:"not null" json:"name"`
	Date       time.Time    `gorm:"column:supply_date;not null;index:ix_supplies_org_date" json:"date"`
	UnitPrice  float64      `gorm:"column:unit_price;not null" json:"unit_price"`
	Quantity   int64        `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (s Supply) Validate() error {
	if s.UnitPrice <= 0 {
		return ErrInvalidUnitPrice
	}
	if s.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// TotalValue is unit price times quantity at full precision.
func (s Supply) TotalValue() float64 {
	return s.UnitPrice * float64(s.Quantity)
}
