package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Organization is a tenant. Seller identity fields feed the invoice QR
// payload; Timezone, when set, overrides the billing-config time zone for
// period bucketing and QR timestamps.
type Organization struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	VATNumber string       `gorm:"column:vat_number;not null" json:"vat_number"`
	Timezone  string       `gorm:"column:timezone" json:"timezone,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
