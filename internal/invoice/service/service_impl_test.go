package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	categorydomain "github.com/smallbiznis/crewbill/internal/category/domain"
	categoryservice "github.com/smallbiznis/crewbill/internal/category/service"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/config"
	customerdomain "github.com/smallbiznis/crewbill/internal/customer/domain"
	customerservice "github.com/smallbiznis/crewbill/internal/customer/service"
	invoicedomain "github.com/smallbiznis/crewbill/internal/invoice/domain"
	"github.com/smallbiznis/crewbill/internal/invoice/qr"
	jobdomain "github.com/smallbiznis/crewbill/internal/job/domain"
	jobservice "github.com/smallbiznis/crewbill/internal/job/service"
	laborerdomain "github.com/smallbiznis/crewbill/internal/laborer/domain"
	laborerservice "github.com/smallbiznis/crewbill/internal/laborer/service"
	orgdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
	orgservice "github.com/smallbiznis/crewbill/internal/organization/service"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	supplydomain "github.com/smallbiznis/crewbill/internal/supply/domain"
	supplyservice "github.com/smallbiznis/crewbill/internal/supply/service"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
	timesheetservice "github.com/smallbiznis/crewbill/internal/timesheet/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type invoiceFixture struct {
	ctx        context.Context
	db         *gorm.DB
	node       *snowflake.Node
	clock      *clock.FakeClock
	svc        *Service
	orgID      snowflake.ID
	customerID snowflake.ID
	jobID      snowflake.ID
	categoryID snowflake.ID
	laborerID  snowflake.ID
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&orgdomain.Organization{},
		&customerdomain.Customer{},
		&jobdomain.Job{},
		&categorydomain.Category{},
		&laborerdomain.Laborer{},
		&timesheetdomain.Timesheet{},
		&supplydomain.Supply{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
	))
	// SQLite needs the exact unique index for ON CONFLICT to match.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS ux_invoices_scope ON invoices(org_id, customer_name, invoice_month, invoice_year)")

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC))
	holder := config.NewStaticBillingConfigHolder(config.DefaultBillingConfig())

	orgs := orgservice.New(orgservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo: repository.ProvideStore[orgdomain.Organization](db),
	})
	customers := customerservice.New(customerservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo: repository.ProvideStore[customerdomain.Customer](db),
	})
	jobs := jobservice.New(jobservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo: repository.ProvideStore[jobdomain.Job](db),
	})
	categories := categoryservice.New(categoryservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo: repository.ProvideStore[categorydomain.Category](db),
	})
	laborers := laborerservice.New(laborerservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo: repository.ProvideStore[laborerdomain.Laborer](db),
	})
	timesheets := timesheetservice.New(timesheetservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo:     repository.ProvideStore[timesheetdomain.Timesheet](db),
		Laborers: laborers,
	})
	supplies := supplyservice.New(supplyservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo:       repository.ProvideStore[supplydomain.Supply](db),
		Categories: categories,
	})

	svc := New(Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock, Billing: holder,
		Organizations: orgs, Customers: customers, Jobs: jobs,
		Categories: categories, Timesheets: timesheets, Supplies: supplies,
	}).(*Service)

	org, err := orgs.Create(context.Background(), orgdomain.CreateOrganizationRequest{
		Name:      "Desert Crew Contracting",
		VATNumber: "310123456700003",
	})
	require.NoError(t, err)

	ctx := orgcontext.WithOrgID(context.Background(), int64(org.ID))

	customer, err := customers.Create(ctx, customerdomain.CreateCustomerRequest{Name: "Acme Towers"})
	require.NoError(t, err)
	job, err := jobs.Create(ctx, jobdomain.CreateJobRequest{Name: "Tower Site A"})
	require.NoError(t, err)
	category, err := categories.Create(ctx, categorydomain.CreateCategoryRequest{Name: "Cement", Kind: "SUPPLY"})
	require.NoError(t, err)
	laborer, err := laborers.Create(ctx, laborerdomain.CreateLaborerRequest{
		Name: "Hamid", SalaryRate: 20, OrgRate: 35,
	})
	require.NoError(t, err)

	return &invoiceFixture{
		ctx:        ctx,
		db:         db,
		node:       node,
		clock:      fakeClock,
		svc:        svc,
		orgID:      org.ID,
		customerID: customer.ID,
		jobID:      job.ID,
		categoryID: category.ID,
		laborerID:  laborer.ID,
	}
}

func (f *invoiceFixture) seedTimesheet(t *testing.T, date time.Time, regular, overtime float64, multiplier timesheetdomain.Multiplier) {
	t.Helper()
	ts := timesheetdomain.Timesheet{
		ID: f.node.Generate(), OrgID: f.orgID, LaborerID: f.laborerID, JobID: f.jobID,
		WorkDate: date, RegularHours: regular, OvertimeHours: overtime, Multiplier: multiplier,
		SalaryRate: 20, OrgRate: 35,
		CreatedAt:  date, UpdatedAt: date,
	}
	require.NoError(t, ts.Validate())
	require.NoError(t, f.db.Create(&ts).Error)
}

func (f *invoiceFixture) seedSupply(t *testing.T, date time.Time, name string, unitPrice float64, quantity int64) {
	t.Helper()
	supply := supplydomain.Supply{
		ID: f.node.Generate(), OrgID: f.orgID, CategoryID: f.categoryID,
		Name: name, Date: date, UnitPrice: unitPrice, Quantity: quantity,
		CreatedAt: date, UpdatedAt: date,
	}
	require.NoError(t, f.db.Create(&supply).Error)
}

func TestSynthesizeMonthly_WeightedAverageSupplyLine(t *testing.T) {
	f := newInvoiceFixture(t)

	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	f.seedSupply(t, march, "Cement bag", 10, 2)
	f.seedSupply(t, march.AddDate(0, 0, 1), "Quick-set", 20, 1)

	invoice, err := f.svc.SynthesizeMonthly(f.ctx, invoicedomain.SynthesizeInvoiceRequest{
		CustomerID: f.customerID.String(), Month: 3, Year: 2026,
	})
	require.NoError(t, err)
	require.Len(t, invoice.Lines, 1)

	line := invoice.Lines[0]
	assert.Equal(t, 3.0, line.Quantity)
	assert.Equal(t, 13.33, line.UnitPrice)
	assert.Equal(t, 40.0, line.LineTotal)
	assert.Equal(t, 6.0, line.VATAmount)

	assert.Equal(t, 40.0, invoice.Subtotal)
	assert.Equal(t, 6.0, invoice.VATAmount)
	assert.Equal(t, 46.0, invoice.TotalAmount)
	assert.Equal(t, "1", invoice.InvoiceNumber)
}

func TestSynthesizeMonthly_TotalsIdentityAndQR(t *testing.T) {
	f := newInvoiceFixture(t)

	multiplier, err := timesheetdomain.NewMultiplier(2)
	require.NoError(t, err)
	for day := 1; day <= 5; day++ {
		f.seedTimesheet(t, time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC), 8, 1, multiplier)
	}

	invoice, err := f.svc.SynthesizeMonthly(f.ctx, invoicedomain.SynthesizeInvoiceRequest{
		CustomerID: f.customerID.String(), Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	// 40h*35 + 5h*35*1.5 flat billing factor = 1400 + 262.50.
	assert.Equal(t, 1662.50, invoice.Subtotal)
	assert.Equal(t, invoicedomain.Round2(invoice.Subtotal*0.15), invoice.VATAmount)
	assert.Equal(t, invoicedomain.Round2(invoice.Subtotal+invoice.VATAmount), invoice.TotalAmount)

	payload, err := qr.Decode(invoice.QRPayload)
	require.NoError(t, err)
	assert.Equal(t, "Desert Crew Contracting", payload.SellerName)
	assert.Equal(t, "310123456700003", payload.VATNumber)
	assert.Equal(t, fmt.Sprintf("%.2f", invoice.TotalAmount), payload.Total)
	assert.Equal(t, fmt.Sprintf("%.2f", invoice.VATAmount), payload.VAT)
	// Fake clock noon UTC rendered in the default Asia/Riyadh zone.
	assert.Equal(t, "2026-03-31T15:00:00+03:00", payload.Timestamp)
}

func TestSynthesizeMonthly_DuplicateRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedSupply(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), "Rebar", 50, 4)

	first, err := f.svc.SynthesizeMonthly(f.ctx, invoicedomain.SynthesizeInvoiceRequest{
		CustomerID: f.customerID.String(), Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	_, err = f.svc.SynthesizeMonthly(f.ctx, invoicedomain.SynthesizeInvoiceRequest{
		CustomerID: f.customerID.String(), Month: 3, Year: 2026,
	})
	require.Error(t, err)

	dup, ok := invoicedomain.IsDuplicateInvoice(err)
	require.True(t, ok)
	assert.Equal(t, first.ID, dup.ExistingID)
	assert.Equal(t, first.InvoiceNumber, dup.InvoiceNumber)
	assert.Equal(t, "Acme Towers", dup.CustomerName)

	var count int64
	f.db.Model(&invoicedomain.Invoice{}).Where("org_id = ?", f.orgID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSynthesizeMonthly_NoBillableActivity(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.SynthesizeMonthly(f.ctx, invoicedomain.SynthesizeInvoiceRequest{
		CustomerID: f.customerID.String(), Month: 3, Year: 2026,
	})
	assert.ErrorIs(t, err, invoicedomain.ErrNoBillableActivity)
}

func TestCreate_ManualLinesAndNumberingScope(t *testing.T) {
	f := newInvoiceFixture(t)

	march, err := f.svc.Create(f.ctx, invoicedomain.CreateInvoiceRequest{
		CustomerName: "Acme Towers", Month: 3, Year: 2026,
		Lines: []invoicedomain.LineInput{
			{Description: "Mobilization", Quantity: 1, UnitPrice: 500, VATRate: 15},
			{Description: "Crane rental", Quantity: 2, UnitPrice: 750, VATRate: 15},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", march.InvoiceNumber)
	assert.Equal(t, 2000.0, march.Subtotal)
	assert.Equal(t, 300.0, march.VATAmount)
	assert.Equal(t, 2300.0, march.TotalAmount)

	// Same month, another customer: the sequence continues.
	second, err := f.svc.Create(f.ctx, invoicedomain.CreateInvoiceRequest{
		CustomerName: "Beta Builders", Month: 3, Year: 2026,
		Lines: []invoicedomain.LineInput{
			{Description: "Scaffolding", Quantity: 1, UnitPrice: 100, VATRate: 15},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2", second.InvoiceNumber)

	// New month: the sequence resets.
	april, err := f.svc.Create(f.ctx, invoicedomain.CreateInvoiceRequest{
		CustomerName: "Acme Towers", Month: 4, Year: 2026,
		Lines: []invoicedomain.LineInput{
			{Description: "Handover snags", Quantity: 1, UnitPrice: 250, VATRate: 15},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", april.InvoiceNumber)
}

func TestCreate_RejectsInvalidLines(t *testing.T) {
	f := newInvoiceFixture(t)

	cases := []invoicedomain.LineInput{
		{Description: "", Quantity: 1, UnitPrice: 10, VATRate: 15},
		{Description: "x", Quantity: 0, UnitPrice: 10, VATRate: 15},
		{Description: "x", Quantity: 1, UnitPrice: 0, VATRate: 15},
		{Description: "x", Quantity: 1, UnitPrice: 10, VATRate: 101},
	}
	for _, line := range cases {
		_, err := f.svc.Create(f.ctx, invoicedomain.CreateInvoiceRequest{
			CustomerName: "Acme Towers", Month: 3, Year: 2026,
			Lines:        []invoicedomain.LineInput{line},
		})
		assert.ErrorIs(t, err, invoicedomain.ErrInvalidLine)
	}

	_, err := f.svc.Create(f.ctx, invoicedomain.CreateInvoiceRequest{
		CustomerName: "Acme Towers", Month: 13, Year: 2026,
		Lines:        []invoicedomain.LineInput{{Description: "x", Quantity: 1, UnitPrice: 10}},
	})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidPeriod)
}

func TestGetByID_LoadsLines(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedSupply(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), "Rebar", 50, 4)

	created, err := f.svc.SynthesizeMonthly(f.ctx, invoicedomain.SynthesizeInvoiceRequest{
		CustomerID: f.customerID.String(), Month: 3, Year: 2026,
	})
	require.NoError(t, err)

	loaded, err := f.svc.GetByID(f.ctx, invoicedomain.GetInvoiceRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, created.TotalAmount, loaded.TotalAmount)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 200.0, loaded.Lines[0].LineTotal)

	listed, err := f.svc.List(f.ctx, invoicedomain.ListInvoiceRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}
