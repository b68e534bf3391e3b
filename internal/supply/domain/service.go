package domain

import (
	"context"
	"errors"
	"time"
)

type CreateSupplyRequest struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int64   `json:"quantity"`
}

type ListSupplyRequest struct {
	CategoryID string `form:"category_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type GetSupplyRequest struct {
	ID string
}

type Window struct {
	From time.Time
	To   time.Time
}

type Service interface {
	Create(context.Context, CreateSupplyRequest) (Supply, error)
	List(context.Context, ListSupplyRequest) ([]Supply, error)
	GetByID(context.Context, GetSupplyRequest) (Supply, error)
	Delete(context.Context, GetSupplyRequest) error
	ListWindow(ctx context.Context, window Window) ([]Supply, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCategory     = errors.New("invalid_category")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidUnitPrice    = errors.New("invalid_unit_price")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
