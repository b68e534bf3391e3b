package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/crewbill/internal/category/domain"
	"github.com/smallbiznis/crewbill/internal/config"
	creditdomain "github.com/smallbiznis/crewbill/internal/credit/domain"
	expensedomain "github.com/smallbiznis/crewbill/internal/expense/domain"
	laborerdomain "github.com/smallbiznis/crewbill/internal/laborer/domain"
	orgdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	reportdomain "github.com/smallbiznis/crewbill/internal/report/domain"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	Log           *zap.Logger
	Billing       *config.BillingConfigHolder
	Organizations orgdomain.Service
	Laborers      laborerdomain.Service
	Categories    categorydomain.Service
	Timesheets    timesheetdomain.Service
	Expenses      expensedomain.Service
	Credits       creditdomain.Service
}

type Service struct {
	log           *zap.Logger
	billing       *config.BillingConfigHolder
	organizations orgdomain.Service
	laborers      laborerdomain.Service
	categories    categorydomain.Service
	timesheets    timesheetdomain.Service
	expenses      expensedomain.Service
	credits       creditdomain.Service
}

func New(p Params) reportdomain.Service {
	return &Service{
		log:           p.Log.Named("report.service"),
		billing:       p.Billing,
		organizations: p.Organizations,
		laborers:      p.Laborers,
		categories:    p.Categories,
		timesheets:    p.Timesheets,
		expenses:      p.Expenses,
		credits:       p.Credits,
	}
}

func (s *Service) Labor(ctx context.Context, req reportdomain.ReportRequest) ([]reportdomain.LaborRow, error) {
	window, err := parseWindow(req.From, req.To)
	if err != nil {
		return nil, err
	}

	timesheets, err := s.timesheets.ListWindow(ctx, timesheetdomain.Window(window))
	if err != nil {
		return nil, err
	}
	names, err := s.laborerNames(ctx)
	if err != nil {
		return nil, err
	}
	return laborRows(timesheets, names), nil
}

func (s *Service) Client(ctx context.Context, req reportdomain.ReportRequest) ([]reportdomain.ClientRow, error) {
	window, err := parseWindow(req.From, req.To)
	if err != nil {
		return nil, err
	}

	timesheets, err := s.timesheets.ListWindow(ctx, timesheetdomain.Window(window))
	if err != nil {
		return nil, err
	}
	names, err := s.laborerNames(ctx)
	if err != nil {
		return nil, err
	}
	return clientRows(timesheets, names), nil
}

func (s *Service) ProfitLoss(ctx context.Context, req reportdomain.ReportRequest) (reportdomain.ProfitLossReport, error) {
	window, err := parseWindow(req.From, req.To)
	if err != nil {
		return reportdomain.ProfitLossReport{}, err
	}

	timesheets, err := s.timesheets.ListWindow(ctx, timesheetdomain.Window(window))
	if err != nil {
		return reportdomain.ProfitLossReport{}, err
	}
	expenses, err := s.expenses.ListWindow(ctx, expensedomain.Window(window))
	if err != nil {
		return reportdomain.ProfitLossReport{}, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return reportdomain.ProfitLossReport{}, err
	}
	return profitLoss(timesheets, expenses, names), nil
}

func (s *Service) CreditLedger(ctx context.Context, req reportdomain.CreditLedgerRequest) ([]reportdomain.LedgerRow, error) {
	window, err := parseWindow(req.From, req.To)
	if err != nil {
		return nil, err
	}
	bucket, err := reportdomain.ParseBucket(strings.ToLower(strings.TrimSpace(req.GroupBy)))
	if err != nil {
		return nil, err
	}

	credits, err := s.credits.ListWindow(ctx, creditdomain.Window(window))
	if err != nil {
		return nil, err
	}
	return creditLedger(credits, bucket, s.location(ctx)), nil
}

// location resolves the civil time zone bucketing runs in: the org's
// override when set, the billing config's zone otherwise.
func (s *Service) location(ctx context.Context) *time.Location {
	cfg := s.billing.Get()
	location := cfg.Location()

	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return location
	}
	org, err := s.organizations.GetByID(ctx, orgdomain.GetOrganizationRequest{ID: orgID.String()})
	if err != nil || org.Timezone == "" {
		return location
	}
	if loc, err := time.LoadLocation(org.Timezone); err == nil {
		return loc
	}
	return location
}

func (s *Service) laborerNames(ctx context.Context) (map[snowflake.ID]string, error) {
	laborers, err := s.laborers.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[snowflake.ID]string, len(laborers))
	for _, laborer := range laborers {
		names[laborer.ID] = laborer.Name
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

type window struct {
	From time.Time
	To   time.Time
}

func parseWindow(from, to string) (window, error) {
	fromDate, err := time.Parse(dateLayout, strings.TrimSpace(from))
	if err != nil {
		return window{}, reportdomain.ErrInvalidDate
	}
	toDate, err := time.Parse(dateLayout, strings.TrimSpace(to))
	if err != nil {
		return window{}, reportdomain.ErrInvalidDate
	}
	if toDate.Before(fromDate) {
		return window{}, reportdomain.ErrInvalidDate
	}
	return window{From: fromDate, To: toDate.Add(24*time.Hour - time.Second)}, nil
}
