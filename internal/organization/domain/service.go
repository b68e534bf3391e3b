package domain

import (
	"context"
	"errors"
)

type CreateOrganizationRequest struct {
	Name      string `json:"name"`
	VATNumber string `json:"vat_number"`
	Timezone  string `json:"timezone"`
}

type UpdateOrganizationRequest struct {
	ID        string `json:"-"`
	Name      string `json:"name"`
	VATNumber string `json:"vat_number"`
	Timezone  string `json:"timezone"`
}

type GetOrganizationRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateOrganizationRequest) (Organization, error)
	List(context.Context) ([]Organization, error)
	GetByID(context.Context, GetOrganizationRequest) (Organization, error)
	Update(context.Context, UpdateOrganizationRequest) (Organization, error)
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidVATNumber = errors.New("invalid_vat_number")
	ErrInvalidTimezone  = errors.New("invalid_timezone")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
)
