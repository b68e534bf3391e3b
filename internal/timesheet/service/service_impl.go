package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/clock"
	laborerdomain "github.com/smallbiznis/crewbill/internal/laborer/domain"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	"github.com/smallbiznis/crewbill/internal/timesheet/domain"
	"github.com/smallbiznis/crewbill/pkg/db/option"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     repository.Repository[domain.Timesheet]
	Laborers laborerdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     repository.Repository[domain.Timesheet]
	laborers laborerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("timesheet.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		laborers: p.Laborers,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTimesheetRequest) (domain.Timesheet, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Timesheet{}, domain.ErrInvalidOrganization
	}

	laborer, err := s.laborers.GetByID(ctx, laborerdomain.GetLaborerRequest{ID: req.LaborerID})
	if err != nil {
		return domain.Timesheet{}, domain.ErrInvalidLaborer
	}

	jobID, err := snowflake.ParseString(strings.TrimSpace(req.JobID))
	if err != nil || jobID == 0 {
		return domain.Timesheet{}, domain.ErrInvalidJob
	}

	workDate, err := time.Parse(dateLayout, strings.TrimSpace(req.WorkDate))
	if err != nil {
		return domain.Timesheet{}, domain.ErrInvalidDate
	}

	multiplier := domain.NoOvertime()
	if req.Multiplier != nil {
		multiplier, err = domain.NewMultiplier(*req.Multiplier)
		if err != nil {
			return domain.Timesheet{}, err
		}
	}

	now := s.clock.Now()
	timesheet := domain.Timesheet{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		LaborerID:     laborer.ID,
		JobID:         jobID,
		WorkDate:      workDate,
		RegularHours:  req.RegularHours,
		OvertimeHours: req.OvertimeHours,
		Multiplier:    multiplier,
		SalaryRate:    laborer.SalaryRate,
		OrgRate:       laborer.OrgRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := timesheet.Validate(); err != nil {
		return domain.Timesheet{}, err
	}

	if err := s.repo.Create(ctx, &timesheet); err != nil {
		return domain.Timesheet{}, err
	}

	return timesheet, nil
}

func (s *Service) List(ctx context.Context, req domain.ListTimesheetRequest) ([]domain.Timesheet, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	filter := domain.Timesheet{OrgID: orgID}
	if value := strings.TrimSpace(req.LaborerID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidLaborer
		}
		filter.LaborerID = id
	}
	if value := strings.TrimSpace(req.JobID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidJob
		}
		filter.JobID = id
	}

	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Default: "work_date"}),
	}
	if value := strings.TrimSpace(req.From); value != "" {
		from, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "work_date", Operator: option.GTE, Value: from}))
	}
	if value := strings.TrimSpace(req.To); value != "" {
		to, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "work_date", Operator: option.LTE, Value: to}))
	}

	items, err := s.repo.Find(ctx, &filter, opts...)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetTimesheetRequest) (domain.Timesheet, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Timesheet{}, domain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Timesheet{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Timesheet{ID: id, OrgID: orgID})
	if err != nil {
		return domain.Timesheet{}, err
	}
	if item == nil {
		return domain.Timesheet{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetTimesheetRequest) error {
	timesheet, err := s.GetByID(ctx, req)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, timesheet.ID.String())
}

func (s *Service) ListWindow(ctx context.Context, window domain.Window) ([]domain.Timesheet, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	items, err := s.repo.Find(ctx, &domain.Timesheet{OrgID: orgID},
		option.ApplyOperator(option.Condition{Field: "work_date", Operator: option.GTE, Value: window.From}),
		option.ApplyOperator(option.Condition{Field: "work_date", Operator: option.LTE, Value: window.To}),
		option.WithSortBy(option.QuerySortBy{Default: "work_date"}),
	)
	if err != nil {
		return nil, err
	}

	timesheets := collect(items)
	for _, timesheet := range timesheets {
		if err := timesheet.Validate(); err != nil {
			return nil, err
		}
	}
	return timesheets, nil
}

func collect(items []*domain.Timesheet) []domain.Timesheet {
	timesheets := make([]domain.Timesheet, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		timesheets = append(timesheets, *item)
	}
	return timesheets
}
