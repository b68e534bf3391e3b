package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/laborer/domain"
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
	Repo  repository.Repository[domain.Laborer]
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Laborer]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("laborer.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLaborerRequest) (domain.Laborer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Laborer{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Laborer{}, domain.ErrInvalidName
	}
	if req.SalaryRate <= 0 {
		return domain.Laborer{}, domain.ErrInvalidSalaryRate
	}
	if req.OrgRate <= 0 {
		return domain.Laborer{}, domain.ErrInvalidOrgRate
	}

	now := s.clock.Now()
	laborer := domain.Laborer{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		Name:       name,
		Trade:      strings.TrimSpace(req.Trade),
		SalaryRate: req.SalaryRate,
		OrgRate:    req.OrgRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, &laborer); err != nil {
		return domain.Laborer{}, err
	}

	return laborer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Laborer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	items, err := s.repo.Find(ctx, &domain.Laborer{OrgID: orgID})
	if err != nil {
		return nil, err
	}

	laborers := make([]domain.Laborer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		laborers = append(laborers, *item)
	}
	return laborers, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetLaborerRequest) (domain.Laborer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Laborer{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Laborer{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Laborer{ID: id, OrgID: orgID})
	if err != nil {
		return domain.Laborer{}, err
	}
	if item == nil {
		return domain.Laborer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateLaborerRequest) (domain.Laborer, error) {
	laborer, err := s.GetByID(ctx, domain.GetLaborerRequest{ID: req.ID})
	if err != nil {
		return domain.Laborer{}, err
	}

	updates := map[string]any{"updated_at": s.clock.Now()}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
		laborer.Name = name
	}
	if trade := strings.TrimSpace(req.Trade); trade != "" {
		updates["trade"] = trade
		laborer.Trade = trade
	}
	if req.SalaryRate != nil {
		if *req.SalaryRate <= 0 {
			return domain.Laborer{}, domain.ErrInvalidSalaryRate
		}
		updates["salary_rate"] = *req.SalaryRate
		laborer.SalaryRate = *req.SalaryRate
	}
	if req.OrgRate != nil {
		if *req.OrgRate <= 0 {
			return domain.Laborer{}, domain.ErrInvalidOrgRate
		}
		updates["org_rate"] = *req.OrgRate
		laborer.OrgRate = *req.OrgRate
	}

	if err := s.repo.Update(ctx, laborer.ID.String(), updates); err != nil {
		return domain.Laborer{}, err
	}

	return laborer, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetLaborerRequest) error {
	laborer, err := s.GetByID(ctx, req)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, laborer.ID.String())
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
