package domain

import (
	"context"
	"errors"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type ListCategoryRequest struct {
	Kind string `form:"kind"`
}

type GetCategoryRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCategoryRequest) (Category, error)
	List(context.Context, ListCategoryRequest) ([]Category, error)
	GetByID(context.Context, GetCategoryRequest) (Category, error)
	Delete(context.Context, GetCategoryRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidKind         = errors.New("invalid_kind")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

// ParseKind validates a caller-supplied kind string.
func ParseKind(value string) (CategoryKind, error) {
	switch kind := CategoryKind(value); kind {
	case KindSupply, KindExpense:
		return kind, nil
	default:
		return "", ErrInvalidKind
	}
}
