package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

type SynthesizeInvoiceRequest struct {
	CustomerID string `json:"customer_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

type LineInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	VATRate     float64 `json:"vat_rate"`
}

type CreateInvoiceRequest struct {
	CustomerName string      `json:"customer_name"`
	Month        int         `json:"month"`
	Year         int         `json:"year"`
	Lines        []LineInput `json:"lines"`
}

type ListInvoiceRequest struct {
	Month int `form:"month"`
	Year  int `form:"year"`
}

type GetInvoiceRequest struct {
	ID string
}

type Service interface {
	// SynthesizeMonthly builds the customer's invoice for a calendar month
	// from that month's timesheets and supplies.
	SynthesizeMonthly(context.Context, SynthesizeInvoiceRequest) (Invoice, error)

	// Create accepts caller-supplied line items and applies the same
	// derivation, numbering and QR steps as synthesis.
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)

	List(context.Context, ListInvoiceRequest) ([]Invoice, error)
	GetByID(context.Context, GetInvoiceRequest) (Invoice, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCustomer     = errors.New("invalid_customer")
	ErrInvalidPeriod       = errors.New("invalid_period")
	ErrInvalidLine         = errors.New("invalid_line")
	ErrNoBillableActivity  = errors.New("no_billable_activity")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

// DuplicateInvoiceError reports that the (customer, month, year) scope is
// already invoiced, carrying the existing invoice's identity so callers can
// redirect instead of retrying.
type DuplicateInvoiceError struct {
	ExistingID    snowflake.ID
	InvoiceNumber string
	CustomerName  string
	Month         int
	Year          int
}

func (e *DuplicateInvoiceError) Error() string {
	return fmt.Sprintf("duplicate_invoice: %s already invoiced for %d-%02d as number %s",
		e.CustomerName, e.Year, e.Month, e.InvoiceNumber)
}

// IsDuplicateInvoice unwraps err as a DuplicateInvoiceError.
func IsDuplicateInvoice(err error) (*DuplicateInvoiceError, bool) {
	var dup *DuplicateInvoiceError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}
