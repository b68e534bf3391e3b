package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "ACTIVE"
	JobStatusClosed JobStatus = "CLOSED"
)

type Job struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	CustomerID snowflake.ID `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	Name       string       `gorm:"not null" json:"name"`
	Site       string       `json:"site,omitempty"`
	Status     JobStatus    `gorm:"not null;default:ACTIVE" json:"status"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
