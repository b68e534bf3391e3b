package domain

import (
	"context"
	"errors"
)

type CreateJobRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Site       string `json:"site"`
}

type ListJobRequest struct {
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
}

type GetJobRequest struct {
	ID string
}

type CloseJobRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateJobRequest) (Job, error)
	List(context.Context, ListJobRequest) ([]Job, error)
	GetByID(context.Context, GetJobRequest) (Job, error)
	Close(context.Context, CloseJobRequest) (Job, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidCustomer     = errors.New("invalid_customer")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
