package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Timesheet is one laborer-day of rated work. SalaryRate and OrgRate are
// snapshots of the laborer's rates at entry time so later rate changes do
// not rewrite history. Multiplier is set iff OvertimeHours > 0.
type Timesheet struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"column:org_id;not null;index:ix_timesheets_org_date" json:"organization_id"`
	LaborerID     snowflake.ID `gorm:"column:laborer_id;not null;index" json:"laborer_id"`
	JobID         snowflake.ID `gorm:"column:job_id;not null;index" json:"job_id"`
	WorkDate      time.Time    `gorm:"column:work_date;not null;index:ix_timesheets_org_date" json:"work_date"`
	RegularHours  float64      `gorm:"column:regular_hours;not null" json:"regular_hours"`
	OvertimeHours float64      `gorm:"column:overtime_hours;not null;default:0" json:"overtime_hours"`
	Multiplier    Multiplier   `gorm:"column:overtime_multiplier;type:numeric" json:"overtime_multiplier"`
	SalaryRate    float64      `gorm:"column:salary_rate;not null" json:"salary_rate"`
	OrgRate       float64      `gorm:"column:org_rate;not null" json:"org_rate"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Validate enforces the rate-model invariants: non-negative hours,
// positive rates, and a multiplier present exactly when overtime is.
func (t Timesheet) Validate() error {
	if t.RegularHours < 0 {
		return ErrInvalidHours
	}
	if t.OvertimeHours < 0 {
		return ErrInvalidHours
	}
	if t.SalaryRate <= 0 {
		return ErrInvalidSalaryRate
	}
	if t.OrgRate <= 0 {
		return ErrInvalidOrgRate
	}
	if t.Multiplier.IsSet() != (t.OvertimeHours > 0) {
		return ErrInvalidMultiplier
	}
	return nil
}
