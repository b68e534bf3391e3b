package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/job/domain"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  repository.Repository[domain.Job]
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Job]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("job.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateJobRequest) (domain.Job, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Job{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Job{}, domain.ErrInvalidName
	}

	var customerID snowflake.ID
	if value := strings.TrimSpace(req.CustomerID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return domain.Job{}, domain.ErrInvalidCustomer
		}
		customerID = id
	}

	now := s.clock.Now()
	job := domain.Job{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		CustomerID: customerID,
		Name:       name,
		Site:       strings.TrimSpace(req.Site),
		Status:     domain.JobStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, &job); err != nil {
		return domain.Job{}, err
	}

	return job, nil
}

func (s *Service) List(ctx context.Context, req domain.ListJobRequest) ([]domain.Job, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	filter := domain.Job{OrgID: orgID}
	switch status := domain.JobStatus(strings.ToUpper(strings.TrimSpace(req.Status))); status {
	case "":
	case domain.JobStatusActive, domain.JobStatusClosed:
		filter.Status = status
	default:
		return nil, domain.ErrInvalidStatus
	}
	if value := strings.TrimSpace(req.CustomerID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidCustomer
		}
		filter.CustomerID = id
	}

	items, err := s.repo.Find(ctx, &filter)
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		jobs = append(jobs, *item)
	}
	return jobs, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetJobRequest) (domain.Job, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Job{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Job{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Job{ID: id, OrgID: orgID})
	if err != nil {
		return domain.Job{}, err
	}
	if item == nil {
		return domain.Job{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Close(ctx context.Context, req domain.CloseJobRequest) (domain.Job, error) {
	job, err := s.GetByID(ctx, domain.GetJobRequest{ID: req.ID})
	if err != nil {
		return domain.Job{}, err
	}

	job.Status = domain.JobStatusClosed
	job.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, job.ID.String(), map[string]any{
		"status":     job.Status,
		"updated_at": job.UpdatedAt,
	}); err != nil {
		return domain.Job{}, err
	}

	return job, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
