package domain

import (
	"context"
	"errors"
	"time"
)

type CreateCreditRequest struct {
	CustomerID string  `json:"customer_id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Type       string  `json:"type"`
	Note       string  `json:"note"`
}

type ListCreditRequest struct {
	CustomerID string `form:"customer_id"`
	Type       string `form:"type"`
	Status     string `form:"status"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type GetCreditRequest struct {
	ID string
}

type UpdateCreditStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

type Window struct {
	From time.Time
	To   time.Time
}

type Service interface {
	Create(context.Context, CreateCreditRequest) (Credit, error)
	List(context.Context, ListCreditRequest) ([]Credit, error)
	GetByID(context.Context, GetCreditRequest) (Credit, error)
	UpdateStatus(context.Context, UpdateCreditStatusRequest) (Credit, error)

	// ListWindow returns the org's non-cancelled credits in the window
	// for the ledger report.
	ListWindow(ctx context.Context, window Window) ([]Credit, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCustomer     = errors.New("invalid_customer")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
