package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/crewbill/internal/category"
	categorydomain "github.com/smallbiznis/crewbill/internal/category/domain"
	"github.com/smallbiznis/crewbill/internal/config"
	"github.com/smallbiznis/crewbill/internal/credit"
	creditdomain "github.com/smallbiznis/crewbill/internal/credit/domain"
	"github.com/smallbiznis/crewbill/internal/customer"
	customerdomain "github.com/smallbiznis/crewbill/internal/customer/domain"
	"github.com/smallbiznis/crewbill/internal/expense"
	expensedomain "github.com/smallbiznis/crewbill/internal/expense/domain"
	"github.com/smallbiznis/crewbill/internal/invoice"
	invoicedomain "github.com/smallbiznis/crewbill/internal/invoice/domain"
	"github.com/smallbiznis/crewbill/internal/job"
	jobdomain "github.com/smallbiznis/crewbill/internal/job/domain"
	"github.com/smallbiznis/crewbill/internal/laborer"
	laborerdomain "github.com/smallbiznis/crewbill/internal/laborer/domain"
	"github.com/smallbiznis/crewbill/internal/observability"
	obsmiddleware "github.com/smallbiznis/crewbill/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/crewbill/internal/observability/metrics"
	"github.com/smallbiznis/crewbill/internal/organization"
	organizationdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
	"github.com/smallbiznis/crewbill/internal/providers"
	"github.com/smallbiznis/crewbill/internal/providers/pdf"
	"github.com/smallbiznis/crewbill/internal/providers/xlsx"
	"github.com/smallbiznis/crewbill/internal/report"
	reportdomain "github.com/smallbiznis/crewbill/internal/report/domain"
	"github.com/smallbiznis/crewbill/internal/supply"
	supplydomain "github.com/smallbiznis/crewbill/internal/supply/domain"
	"github.com/smallbiznis/crewbill/internal/timesheet"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	organization.Module,
	customer.Module,
	laborer.Module,
	job.Module,
	category.Module,
	timesheet.Module,
	supply.Module,
	expense.Module,
	credit.Module,
	invoice.Module,
	report.Module,
	providers.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	billing         *config.BillingConfigHolder
	organizationSvc organizationdomain.Service
	customerSvc     customerdomain.Service
	laborerSvc      laborerdomain.Service
	jobSvc          jobdomain.Service
	categorySvc     categorydomain.Service
	timesheetSvc    timesheetdomain.Service
	supplySvc       supplydomain.Service
	expenseSvc      expensedomain.Service
	creditSvc       creditdomain.Service
	invoiceSvc      invoicedomain.Service
	reportSvc       reportdomain.Service
	pdfProvider     *pdf.Provider
	xlsxExporter    *xlsx.Exporter
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Billing         *config.BillingConfigHolder
	OrganizationSvc organizationdomain.Service
	CustomerSvc     customerdomain.Service
	LaborerSvc      laborerdomain.Service
	JobSvc          jobdomain.Service
	CategorySvc     categorydomain.Service
	TimesheetSvc    timesheetdomain.Service
	SupplySvc       supplydomain.Service
	ExpenseSvc      expensedomain.Service
	CreditSvc       creditdomain.Service
	InvoiceSvc      invoicedomain.Service
	ReportSvc       reportdomain.Service
	PDFProvider     *pdf.Provider
	XLSXExporter    *xlsx.Exporter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		billing:         p.Billing,
		organizationSvc: p.OrganizationSvc,
		customerSvc:     p.CustomerSvc,
		laborerSvc:      p.LaborerSvc,
		jobSvc:          p.JobSvc,
		categorySvc:     p.CategorySvc,
		timesheetSvc:    p.TimesheetSvc,
		supplySvc:       p.SupplySvc,
		expenseSvc:      p.ExpenseSvc,
		creditSvc:       p.CreditSvc,
		invoiceSvc:      p.InvoiceSvc,
		reportSvc:       p.ReportSvc,
		pdfProvider:     p.PDFProvider,
		xlsxExporter:    p.XLSXExporter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Organizations --------
	// Organization routes carry no org context; everything else does.
	api.GET("/organizations", s.ListOrganizations)
	api.POST("/organizations", s.CreateOrganization)
	api.GET("/organizations/:id", s.GetOrganizationByID)
	api.PATCH("/organizations/:id", s.UpdateOrganization)

	org := api.Group("", s.OrgContext())

	// -------- Customers --------
	org.GET("/customers", s.ListCustomers)
	org.POST("/customers", s.CreateCustomer)
	org.GET("/customers/:id", s.GetCustomerByID)
	org.DELETE("/customers/:id", s.DeleteCustomer)

	// -------- Laborers --------
	org.GET("/laborers", s.ListLaborers)
	org.POST("/laborers", s.CreateLaborer)
	org.GET("/laborers/:id", s.GetLaborerByID)
	org.PATCH("/laborers/:id", s.UpdateLaborer)
	org.DELETE("/laborers/:id", s.DeleteLaborer)

	// -------- Jobs --------
	org.GET("/jobs", s.ListJobs)
	org.POST("/jobs", s.CreateJob)
	org.GET("/jobs/:id", s.GetJobByID)
	org.POST("/jobs/:id/close", s.CloseJob)

	// -------- Categories --------
	org.GET("/categories", s.ListCategories)
	org.POST("/categories", s.CreateCategory)
	org.GET("/categories/:id", s.GetCategoryByID)
	org.DELETE("/categories/:id", s.DeleteCategory)

	// -------- Timesheets --------
	org.GET("/timesheets", s.ListTimesheets)
	org.POST("/timesheets", s.CreateTimesheet)
	org.GET("/timesheets/:id", s.GetTimesheetByID)
	org.DELETE("/timesheets/:id", s.DeleteTimesheet)

	// -------- Supplies --------
	org.GET("/supplies", s.ListSupplies)
	org.POST("/supplies", s.CreateSupply)
	org.GET("/supplies/:id", s.GetSupplyByID)
	org.DELETE("/supplies/:id", s.DeleteSupply)

	// -------- Expenses --------
	org.GET("/expenses", s.ListExpenses)
	org.POST("/expenses", s.CreateExpense)
	org.GET("/expenses/:id", s.GetExpenseByID)
	org.DELETE("/expenses/:id", s.DeleteExpense)

	// -------- Credits --------
	org.GET("/credits", s.ListCredits)
	org.POST("/credits", s.CreateCredit)
	org.GET("/credits/:id", s.GetCreditByID)
	org.PATCH("/credits/:id/status", s.UpdateCreditStatus)

	// -------- Invoices --------
	org.GET("/invoices", s.ListInvoices)
	org.POST("/invoices", s.CreateInvoice)
	org.POST("/invoices/synthesize", s.SynthesizeInvoice)
	org.GET("/invoices/:id", s.GetInvoiceByID)
	org.GET("/invoices/:id/render", s.RenderInvoice)

	// -------- Reports --------
	org.GET("/reports/labor", s.GetLaborReport)
	org.GET("/reports/client", s.GetClientReport)
	org.GET("/reports/profit-loss", s.GetProfitLossReport)
	org.GET("/reports/credit-ledger", s.GetCreditLedger)
}
