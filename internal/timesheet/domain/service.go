package domain

import (
	"context"
	"errors"
	"time"
)

type CreateTimesheetRequest struct {
	LaborerID     string   `json:"laborer_id"`
	JobID         string   `json:"job_id"`
	WorkDate      string   `json:"work_date"`
	RegularHours  float64  `json:"regular_hours"`
	OvertimeHours float64  `json:"overtime_hours"`
	Multiplier    *float64 `json:"overtime_multiplier"`
}

type ListTimesheetRequest struct {
	LaborerID string `form:"laborer_id"`
	JobID     string `form:"job_id"`
	From      string `form:"from"`
	To        string `form:"to"`
}

type GetTimesheetRequest struct {
	ID string
}

// Window is an inclusive date range, typically one calendar month.
type Window struct {
	From time.Time
	To   time.Time
}

type Service interface {
	Create(context.Context, CreateTimesheetRequest) (Timesheet, error)
	List(context.Context, ListTimesheetRequest) ([]Timesheet, error)
	GetByID(context.Context, GetTimesheetRequest) (Timesheet, error)
	Delete(context.Context, GetTimesheetRequest) error

	// ListWindow returns all of the org's timesheets inside the window,
	// already validated, for the billing engine and reports.
	ListWindow(ctx context.Context, window Window) ([]Timesheet, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidLaborer      = errors.New("invalid_laborer")
	ErrInvalidJob          = errors.New("invalid_job")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidHours        = errors.New("invalid_hours")
	ErrInvalidSalaryRate   = errors.New("invalid_salary_rate")
	ErrInvalidOrgRate      = errors.New("invalid_org_rate")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
