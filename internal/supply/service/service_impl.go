package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/crewbill/internal/category/domain"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	"github.com/smallbiznis/crewbill/internal/supply/domain"
	"github.com/smallbiznis/crewbill/pkg/db/option"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       repository.Repository[domain.Supply]
	Categories categorydomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       repository.Repository[domain.Supply]
	categories categorydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("supply.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		categories: p.Categories,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplyRequest) (domain.Supply, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Supply{}, domain.ErrInvalidOrganization
	}

	category, err := s.categories.GetByID(ctx, categorydomain.GetCategoryRequest{ID: req.CategoryID})
	if err != nil || category.Kind != categorydomain.KindSupply {
		return domain.Supply{}, domain.ErrInvalidCategory
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supply{}, domain.ErrInvalidName
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return domain.Supply{}, domain.ErrInvalidDate
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	now := s.clock.Now()
	supply := domain.Supply{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		CategoryID: category.ID,
		Name:       name,
		Date:       date,
		UnitPrice:  req.UnitPrice,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := supply.Validate(); err != nil {
		return domain.Supply{}, err
	}

	if err := s.repo.Create(ctx, &supply); err != nil {
		return domain.Supply{}, err
	}

	return supply, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSupplyRequest) ([]domain.Supply, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	filter := domain.Supply{OrgID: orgID}
	if value := strings.TrimSpace(req.CategoryID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidCategory
		}
		filter.CategoryID = id
	}

	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Default: "supply_date"}),
	}
	if value := strings.TrimSpace(req.From); value != "" {
		from, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "supply_date", Operator: option.GTE, Value: from}))
	}
	if value := strings.TrimSpace(req.To); value != "" {
		to, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "supply_date", Operator: option.LTE, Value: to}))
	}

	items, err := s.repo.Find(ctx, &filter, opts...)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetSupplyRequest) (domain.Supply, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Supply{}, domain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Supply{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Supply{ID: id, OrgID: orgID})
	if err != nil {
		return domain.Supply{}, err
	}
	if item == nil {
		return domain.Supply{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetSupplyRequest) error {
	supply, err := s.GetByID(ctx, req)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, supply.ID.String())
}

func (s *Service) ListWindow(ctx context.Context, window domain.Window) ([]domain.Supply, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	items, err := s.repo.Find(ctx, &domain.Supply{OrgID: orgID},
		option.ApplyOperator(option.Condition{Field: "supply_date", Operator: option.GTE, Value: window.From}),
		option.ApplyOperator(option.Condition{Field: "supply_date", Operator: option.LTE, Value: window.To}),
		option.WithSortBy(option.QuerySortBy{Default: "supply_date"}),
	)
	if err != nil {
		return nil, err
	}

	supplies := collect(items)
	for _, supply := range supplies {
		if err := supply.Validate(); err != nil {
			return nil, err
		}
	}
	return supplies, nil
}

func collect(items []*domain.Supply) []domain.Supply {
	supplies := make([]domain.Supply, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		supplies = append(supplies, *item)
	}
	return supplies
}
