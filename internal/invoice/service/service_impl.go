package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/crewbill/internal/category/domain"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/config"
	customerdomain "github.com/smallbiznis/crewbill/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/crewbill/internal/invoice/domain"
	"github.com/smallbiznis/crewbill/internal/invoice/numbering"
	"github.com/smallbiznis/crewbill/internal/invoice/qr"
	jobdomain "github.com/smallbiznis/crewbill/internal/job/domain"
	orgdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	supplydomain "github.com/smallbiznis/crewbill/internal/supply/domain"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Billing       *config.BillingConfigHolder
	Organizations orgdomain.Service
	Customers     customerdomain.Service
	Jobs          jobdomain.Service
	Categories    categorydomain.Service
	Timesheets    timesheetdomain.Service
	Supplies      supplydomain.Service
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	billing       *config.BillingConfigHolder
	organizations orgdomain.Service
	customers     customerdomain.Service
	jobs          jobdomain.Service
	categories    categorydomain.Service
	timesheets    timesheetdomain.Service
	supplies      supplydomain.Service
}

func New(p Params) invoicedomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("invoice.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		billing:       p.Billing,
		organizations: p.Organizations,
		customers:     p.Customers,
		jobs:          p.Jobs,
		categories:    p.Categories,
		timesheets:    p.Timesheets,
		supplies:      p.Supplies,
	}
}

func (s *Service) SynthesizeMonthly(ctx context.Context, req invoicedomain.SynthesizeInvoiceRequest) (invoicedomain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidOrganization
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return invoicedomain.Invoice{}, err
	}

	customer, err := s.customers.GetByID(ctx, customerdomain.GetCustomerRequest{ID: req.CustomerID})
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidCustomer
	}

	window := monthWindow(req.Month, req.Year)
	timesheets, err := s.timesheets.ListWindow(ctx, timesheetdomain.Window{From: window.From, To: window.To})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	supplies, err := s.supplies.ListWindow(ctx, supplydomain.Window{From: window.From, To: window.To})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if len(timesheets) == 0 && len(supplies) == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrNoBillableActivity
	}

	jobNames, err := s.jobNames(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	categoryNames, err := s.categoryNames(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	cfg := s.billing.Get()
	lines := buildLaborLines(timesheets, jobNames, cfg.VATRatePercent, cfg.OvertimeBillingFactor)
	lines = append(lines, buildSupplyLines(supplies, categoryNames, cfg.VATRatePercent)...)

	return s.persistInvoice(ctx, orgID, customer.Name, req.Month, req.Year, lines)
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidOrganization
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return invoicedomain.Invoice{}, err
	}

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidCustomer
	}
	if len(req.Lines) == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrNoBillableActivity
	}

	lines := make([]invoicedomain.InvoiceLine, 0, len(req.Lines))
	for _, input := range req.Lines {
		description := strings.TrimSpace(input.Description)
		if description == "" || input.Quantity <= 0 || input.UnitPrice <= 0 {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidLine
		}
		if input.VATRate < 0 || input.VATRate > 100 {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidLine
		}
		total := input.Quantity * input.UnitPrice
		lines = append(lines, deriveLine(invoicedomain.SourceManual, description, input.Quantity, input.UnitPrice, total, input.VATRate))
	}

	return s.persistInvoice(ctx, orgID, customerName, req.Month, req.Year, lines)
}

// persistInvoice runs the shared tail of both invoice paths: totals,
// sequential number, QR payload, and the serialized insert. The org row
// lock plus the unique scope index close the numbering race; a concurrent
// writer that slips past the lock loses at ON CONFLICT and surfaces as a
// duplicate.
func (s *Service) persistInvoice(ctx context.Context, orgID snowflake.ID, customerName string, month, year int, lines []invoicedomain.InvoiceLine) (invoicedomain.Invoice, error) {
	subtotal, vatAmount, totalAmount := deriveTotals(lines)
	cfg := s.billing.Get()

	sellerName := cfg.Seller.Name
	sellerVAT := cfg.Seller.VATNumber
	location := cfg.Location()
	if org, err := s.organizations.GetByID(ctx, orgdomain.GetOrganizationRequest{ID: orgID.String()}); err == nil {
		if org.Name != "" {
			sellerName = org.Name
		}
		if org.VATNumber != "" {
			sellerVAT = org.VATNumber
		}
		if org.Timezone != "" {
			if loc, err := time.LoadLocation(org.Timezone); err == nil {
				location = loc
			}
		}
	}

	issuedAt := s.clock.Now()
	qrPayload, err := qr.Encode(sellerName, sellerVAT, issuedAt, totalAmount, vatAmount, location)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoice := invoicedomain.Invoice{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		CustomerName: customerName,
		InvoiceMonth: month,
		InvoiceYear:  year,
		Subtotal:     subtotal,
		VATAmount:    vatAmount,
		TotalAmount:  totalAmount,
		QRPayload:    qrPayload,
		IssuedAt:     issuedAt,
		CreatedAt:    issuedAt,
		UpdatedAt:    issuedAt,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockOrganization(ctx, tx, orgID); err != nil {
			return err
		}

		if existing, err := s.findInvoiceInScope(ctx, tx, orgID, customerName, month, year); err != nil {
			return err
		} else if existing != nil {
			return duplicateOf(existing, customerName, month, year)
		}

		numbers, err := s.listNumbersInScope(ctx, tx, orgID, month, year)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = numbering.Next(numbers)

		inserted, err := s.insertInvoice(ctx, tx, invoice)
		if err != nil {
			return err
		}
		if !inserted {
			existing, err := s.findInvoiceInScope(ctx, tx, orgID, customerName, month, year)
			if err != nil {
				return err
			}
			if existing != nil {
				return duplicateOf(existing, customerName, month, year)
			}
			return gorm.ErrInvalidTransaction
		}

		for i := range lines {
			lines[i].ID = s.genID.Generate()
			lines[i].OrgID = orgID
			lines[i].InvoiceID = invoice.ID
			lines[i].CreatedAt = issuedAt
			if err := s.insertLine(ctx, tx, lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoice.Lines = lines
	s.log.Info("invoice_created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("customer", customerName),
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Float64("total_amount", totalAmount),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) ([]invoicedomain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, invoicedomain.ErrInvalidOrganization
	}

	query := `SELECT id, org_id, invoice_number, customer_name, invoice_month, invoice_year,
	                 subtotal, vat_amount, total_amount, qr_payload, issued_at, created_at, updated_at
	          FROM invoices WHERE org_id = ?`
	args := []any{orgID}
	if req.Month != 0 {
		query += " AND invoice_month = ?"
		args = append(args, req.Month)
	}
	if req.Year != 0 {
		query += " AND invoice_year = ?"
		args = append(args, req.Year)
	}
	query += " ORDER BY invoice_year, invoice_month, invoice_number"

	var invoices []invoicedomain.Invoice
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, req invoicedomain.GetInvoiceRequest) (invoicedomain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}

	var invoice invoicedomain.Invoice
	err = s.db.WithContext(ctx).Raw(
		`SELECT id, org_id, invoice_number, customer_name, invoice_month, invoice_year,
		        subtotal, vat_amount, total_amount, qr_payload, issued_at, created_at, updated_at
		 FROM invoices WHERE org_id = ? AND id = ?`,
		orgID, id,
	).Scan(&invoice).Error
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if invoice.ID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Raw(
		`SELECT id, org_id, invoice_id, source, description, quantity, unit_price,
		        vat_rate, line_total, vat_amount, total_amount, created_at
		 FROM invoice_lines WHERE invoice_id = ? ORDER BY id`,
		id,
	).Scan(&invoice.Lines).Error
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	return invoice, nil
}

func (s *Service) jobNames(ctx context.Context) (map[snowflake.ID]string, error) {
	jobs, err := s.jobs.List(ctx, jobdomain.ListJobRequest{})
	if err != nil {
		return nil, err
	}
	names := make(map[snowflake.ID]string, len(jobs))
	for _, job := range jobs {
		names[job.ID] = job.Name
	}
	return names, nil
}

func (s *Service) categoryNames(ctx context.Context) (map[snowflake.ID]string, error) {
	categories, err := s.categories.List(ctx, categorydomain.ListCategoryRequest{})
	if err != nil {
		return nil, err
	}
	names := make(map[snowflake.ID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}

func (s *Service) lockOrganization(ctx context.Context, tx *gorm.DB, orgID snowflake.ID) error {
	query := `SELECT id FROM organizations WHERE id = ?`
	// sqlite serializes writers at the file level and rejects FOR UPDATE.
	if tx.Dialector.Name() != "sqlite" {
		query += " FOR UPDATE"
	}

	var id snowflake.ID
	if err := tx.WithContext(ctx).Raw(query, orgID).Scan(&id).Error; err != nil {
		return err
	}
	if id == 0 {
		return invoicedomain.ErrInvalidOrganization
	}
	return nil
}

type invoiceScopeRow struct {
	ID            snowflake.ID
	InvoiceNumber string
}

func (s *Service) findInvoiceInScope(ctx context.Context, tx *gorm.DB, orgID snowflake.ID, customerName string, month, year int) (*invoiceScopeRow, error) {
	var row invoiceScopeRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, invoice_number
		 FROM invoices
		 WHERE org_id = ? AND customer_name = ? AND invoice_month = ? AND invoice_year = ?
		 LIMIT 1`,
		orgID, customerName, month, year,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (s *Service) listNumbersInScope(ctx context.Context, tx *gorm.DB, orgID snowflake.ID, month, year int) ([]string, error) {
	var numbers []string
	err := tx.WithContext(ctx).Raw(
		`SELECT invoice_number
		 FROM invoices
		 WHERE org_id = ? AND invoice_month = ? AND invoice_year = ?`,
		orgID, month, year,
	).Scan(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (s *Service) insertInvoice(ctx context.Context, tx *gorm.DB, invoice invoicedomain.Invoice) (bool, error) {
	result := tx.WithContext(ctx).Exec(
		`INSERT INTO invoices (
			id, org_id, invoice_number, customer_name, invoice_month, invoice_year,
			subtotal, vat_amount, total_amount, qr_payload, issued_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (org_id, customer_name, invoice_month, invoice_year) DO NOTHING`,
		invoice.ID,
		invoice.OrgID,
		invoice.InvoiceNumber,
		invoice.CustomerName,
		invoice.InvoiceMonth,
		invoice.InvoiceYear,
		invoice.Subtotal,
		invoice.VATAmount,
		invoice.TotalAmount,
		invoice.QRPayload,
		invoice.IssuedAt,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Service) insertLine(ctx context.Context, tx *gorm.DB, line invoicedomain.InvoiceLine) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO invoice_lines (
			id, org_id, invoice_id, source, description, quantity, unit_price,
			vat_rate, line_total, vat_amount, total_amount, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		line.ID,
		line.OrgID,
		line.InvoiceID,
		line.Source,
		line.Description,
		line.Quantity,
		line.UnitPrice,
		line.VATRate,
		line.LineTotal,
		line.VATAmount,
		line.TotalAmount,
		line.CreatedAt,
	).Error
}

func duplicateOf(existing *invoiceScopeRow, customerName string, month, year int) error {
	return &invoicedomain.DuplicateInvoiceError{
		ExistingID:    existing.ID,
		InvoiceNumber: existing.InvoiceNumber,
		CustomerName:  customerName,
		Month:         month,
		Year:          year,
	}
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return invoicedomain.ErrInvalidPeriod
	}
	if year < 2000 || year > 2200 {
		return invoicedomain.ErrInvalidPeriod
	}
	return nil
}

type window struct {
	From time.Time
	To   time.Time
}

// monthWindow bounds a calendar month in UTC; record dates are stored as
// date-only UTC midnights.
func monthWindow(month, year int) window {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 0, time.UTC)
	return window{From: from, To: to}
}
