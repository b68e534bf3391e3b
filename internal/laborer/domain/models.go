package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Laborer carries the two money rates the billing engine works from:
// SalaryRate is the hourly cost paid to the laborer, OrgRate the hourly
// rate billed to the client. Timesheets snapshot both at entry time.
type Laborer struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	Name       string       `gorm:"not null" json:"name"`
	Trade      string       `json:"trade,omitempty"`
	SalaryRate float64      `gorm:"column:salary_rate;not null" json:"salary_rate"`
	OrgRate    float64      `gorm:"column:org_rate;not null" json:"org_rate"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
