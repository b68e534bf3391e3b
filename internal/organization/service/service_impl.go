package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/organization/domain"
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
	Repo  repository.Repository[domain.Organization]
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Organization]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("organization.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (domain.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Organization{}, domain.ErrInvalidName
	}

	vatNumber := strings.TrimSpace(req.VATNumber)
	if vatNumber == "" {
		return domain.Organization{}, domain.ErrInvalidVATNumber
	}

	timezone, err := normalizeTimezone(req.Timezone)
	if err != nil {
		return domain.Organization{}, err
	}

	now := s.clock.Now()
	org := domain.Organization{
		ID:        s.genID.Generate(),
		Name:      name,
		VATNumber: vatNumber,
		Timezone:  timezone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &org); err != nil {
		return domain.Organization{}, err
	}

	return org, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Organization, error) {
	items, err := s.repo.Find(ctx, &domain.Organization{})
	if err != nil {
		return nil, err
	}

	orgs := make([]domain.Organization, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orgs = append(orgs, *item)
	}
	return orgs, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetOrganizationRequest) (domain.Organization, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Organization{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Organization{ID: id})
	if err != nil {
		return domain.Organization{}, err
	}
	if item == nil {
		return domain.Organization{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrganizationRequest) (domain.Organization, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Organization{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Organization{ID: id})
	if err != nil {
		return domain.Organization{}, err
	}
	if item == nil {
		return domain.Organization{}, domain.ErrNotFound
	}

	updates := map[string]any{"updated_at": s.clock.Now()}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
		item.Name = name
	}
	if vatNumber := strings.TrimSpace(req.VATNumber); vatNumber != "" {
		updates["vat_number"] = vatNumber
		item.VATNumber = vatNumber
	}
	if strings.TrimSpace(req.Timezone) != "" {
		timezone, err := normalizeTimezone(req.Timezone)
		if err != nil {
			return domain.Organization{}, err
		}
		updates["timezone"] = timezone
		item.Timezone = timezone
	}

	if err := s.repo.Update(ctx, id.String(), updates); err != nil {
		return domain.Organization{}, err
	}

	return *item, nil
}

func normalizeTimezone(value string) (string, error) {
	timezone := strings.TrimSpace(value)
	if timezone == "" {
		return "", nil
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return "", domain.ErrInvalidTimezone
	}
	return timezone, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
