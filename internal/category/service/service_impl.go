package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/category/domain"
	"github.com/smallbiznis/crewbill/internal/clock"
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
	Repo  repository.Repository[domain.Category]
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Category]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("category.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCategoryRequest) (domain.Category, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Category{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Category{}, domain.ErrInvalidName
	}

	kind, err := domain.ParseKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	if err != nil {
		return domain.Category{}, err
	}

	now := s.clock.Now()
	category := domain.Category{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &category); err != nil {
		return domain.Category{}, err
	}

	return category, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCategoryRequest) ([]domain.Category, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	filter := domain.Category{OrgID: orgID}
	if value := strings.ToUpper(strings.TrimSpace(req.Kind)); value != "" {
		kind, err := domain.ParseKind(value)
		if err != nil {
			return nil, err
		}
		filter.Kind = kind
	}

	items, err := s.repo.Find(ctx, &filter)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		categories = append(categories, *item)
	}
	return categories, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCategoryRequest) (domain.Category, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Category{}, domain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Category{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Category{ID: id, OrgID: orgID})
	if err != nil {
		return domain.Category{}, err
	}
	if item == nil {
		return domain.Category{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetCategoryRequest) error {
	category, err := s.GetByID(ctx, req)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, category.ID.String())
}
