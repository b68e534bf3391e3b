package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/crewbill/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	VATNumber string `json:"vat_number"`
}

type ListCustomerRequest struct {
	pagination.Pagination
	Name string `form:"name"`
}

type ListCustomerResponse struct {
	Customers []Customer           `json:"customers"`
	PageInfo  *pagination.PageInfo `json:"page_info,omitempty"`
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	Delete(context.Context, GetCustomerRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
