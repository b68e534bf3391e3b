package domain

import (
	"context"
	"errors"
)

type CreateLaborerRequest struct {
	Name       string  `json:"name"`
	Trade      string  `json:"trade"`
	SalaryRate float64 `json:"salary_rate"`
	OrgRate    float64 `json:"org_rate"`
}

type UpdateLaborerRequest struct {
	ID         string   `json:"-"`
	Name       string   `json:"name"`
	Trade      string   `json:"trade"`
	SalaryRate *float64 `json:"salary_rate"`
	OrgRate    *float64 `json:"org_rate"`
}

type GetLaborerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateLaborerRequest) (Laborer, error)
	List(context.Context) ([]Laborer, error)
	GetByID(context.Context, GetLaborerRequest) (Laborer, error)
	Update(context.Context, UpdateLaborerRequest) (Laborer, error)
	Delete(context.Context, GetLaborerRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidSalaryRate   = errors.New("invalid_salary_rate")
	ErrInvalidOrgRate      = errors.New("invalid_org_rate")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
