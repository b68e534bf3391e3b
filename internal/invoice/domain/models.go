package domain

import (
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
)

type LineSource string

const (
	SourceLabor  LineSource = "LABOR"
	SourceSupply LineSource = "SUPPLY"
	SourceManual LineSource = "MANUAL"
)

// Invoice is one issued monthly invoice. At most one exists per
// (org, customer name, month, year); the unique index backs the
// duplicate-synthesis rejection.
type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID  `gorm:"column:org_id;not null;uniqueIndex:ux_invoices_scope" json:"organization_id"`
	InvoiceNumber string        `gorm:"column:invoice_number;not null" json:"invoice_number"`
	CustomerName  string        `gorm:"column:customer_name;not null;uniqueIndex:ux_invoices_scope" json:"customer_name"`
	InvoiceMonth  int           `gorm:"column:invoice_month;not null;uniqueIndex:ux_invoices_scope" json:"invoice_month"`
	InvoiceYear   int           `gorm:"column:invoice_year;not null;uniqueIndex:ux_invoices_scope" json:"invoice_year"`
	Subtotal      float64       `gorm:"not null" json:"subtotal"`
	VATAmount     float64       `gorm:"column:vat_amount;not null" json:"vat_amount"`
	TotalAmount   float64       `gorm:"column:total_amount;not null" json:"total_amount"`
	QRPayload     string        `gorm:"column:qr_payload;not null" json:"qr_payload"`
	IssuedAt      time.Time     `gorm:"column:issued_at;not null" json:"issued_at"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Lines         []InvoiceLine `gorm:"-" json:"lines,omitempty"`
}

// InvoiceLine derived fields are recomputed from quantity, unit price and
// VAT rate on construction; they are stored for querying but never trusted
// over recomputation.
type InvoiceLine struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	InvoiceID   snowflake.ID `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	Source      LineSource   `gorm:"not null" json:"source"`
	Description string       `gorm:"not null" json:"description"`
	Quantity    float64      `gorm:"not null" json:"quantity"`
	UnitPrice   float64      `gorm:"column:unit_price;not null" json:"unit_price"`
	VATRate     float64      `gorm:"column:vat_rate;not null" json:"vat_rate"`
	LineTotal   float64      `gorm:"column:line_total;not null" json:"line_total"`
	VATAmount   float64      `gorm:"column:vat_amount;not null" json:"vat_amount"`
	TotalAmount float64      `gorm:"column:total_amount;not null" json:"total_amount"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Round2 rounds to two decimal places, the precision invoices render at.
// Internal arithmetic stays at full float64 precision; rounding happens
// once when a line or total is materialized.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
