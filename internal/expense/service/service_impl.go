package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/crewbill/internal/category/domain"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/expense/domain"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
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
	Repo       repository.Repository[domain.Expense]
	Categories categorydomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       repository.Repository[domain.Expense]
	categories categorydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("expense.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		categories: p.Categories,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateExpenseRequest) (domain.Expense, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Expense{}, domain.ErrInvalidOrganization
	}

	category, err := s.categories.GetByID(ctx, categorydomain.GetCategoryRequest{ID: req.CategoryID})
	if err != nil || category.Kind != categorydomain.KindExpense {
		return domain.Expense{}, domain.ErrInvalidCategory
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return domain.Expense{}, domain.ErrInvalidDate
	}

	now := s.clock.Now()
	expense := domain.Expense{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		CategoryID: category.ID,
		Date:       date,
		Amount:     req.Amount,
		Note:       strings.TrimSpace(req.Note),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := expense.Validate(); err != nil {
		return domain.Expense{}, err
	}

	if err := s.repo.Create(ctx, &expense); err != nil {
		return domain.Expense{}, err
	}

	return expense, nil
}

func (s *Service) List(ctx context.Context, req domain.ListExpenseRequest) ([]domain.Expense, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	filter := domain.Expense{OrgID: orgID}
	if value := strings.TrimSpace(req.CategoryID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidCategory
		}
		filter.CategoryID = id
	}

	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Default: "expense_date"}),
	}
	if value := strings.TrimSpace(req.From); value != "" {
		from, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "expense_date", Operator: option.GTE, Value: from}))
	}
	if value := strings.TrimSpace(req.To); value != "" {
		to, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "expense_date", Operator: option.LTE, Value: to}))
	}

	items, err := s.repo.Find(ctx, &filter, opts...)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetExpenseRequest) (domain.Expense, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Expense{}, domain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Expense{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Expense{ID: id, OrgID: orgID})
	if err != nil {
		return domain.Expense{}, err
	}
	if item == nil {
		return domain.Expense{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetExpenseRequest) error {
	expense, err := s.GetByID(ctx, req)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, expense.ID.String())
}

func (s *Service) ListWindow(ctx context.Context, window domain.Window) ([]domain.Expense, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	items, err := s.repo.Find(ctx, &domain.Expense{OrgID: orgID},
		option.ApplyOperator(option.Condition{Field: "expense_date", Operator: option.GTE, Value: window.From}),
		option.ApplyOperator(option.Condition{Field: "expense_date", Operator: option.LTE, Value: window.To}),
		option.WithSortBy(option.QuerySortBy{Default: "expense_date"}),
	)
	if err != nil {
		return nil, err
	}

	expenses := collect(items)
	for _, expense := range expenses {
		if err := expense.Validate(); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func collect(items []*domain.Expense) []domain.Expense {
	expenses := make([]domain.Expense, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		expenses = append(expenses, *item)
	}
	return expenses
}
