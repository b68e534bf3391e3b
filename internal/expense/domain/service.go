package domain

import (
	"context"
	"errors"
	"time"
)

type CreateExpenseRequest struct {
	CategoryID string  `json:"category_id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note"`
}

type ListExpenseRequest struct {
	CategoryID string `form:"category_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type GetExpenseRequest struct {
	ID string
}

type Window struct {
	From time.Time
	To   time.Time
}

type Service interface {
	Create(context.Context, CreateExpenseRequest) (Expense, error)
	List(context.Context, ListExpenseRequest) ([]Expense, error)
	GetByID(context.Context, GetExpenseRequest) (Expense, error)
	Delete(context.Context, GetExpenseRequest) error
	ListWindow(ctx context.Context, window Window) ([]Expense, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCategory     = errors.New("invalid_category")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
