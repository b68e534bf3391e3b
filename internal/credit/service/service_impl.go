package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/credit/domain"
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

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  repository.Repository[domain.Credit]
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Credit]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("credit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCreditRequest) (domain.Credit, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Credit{}, domain.ErrInvalidOrganization
	}

	var customerID snowflake.ID
	if value := strings.TrimSpace(req.CustomerID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return domain.Credit{}, domain.ErrInvalidCustomer
		}
		customerID = id
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return domain.Credit{}, domain.ErrInvalidDate
	}

	now := s.clock.Now()
	credit := domain.Credit{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		CustomerID: customerID,
		Date:       date,
		Amount:     req.Amount,
		Type:       domain.CreditType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Status:     domain.StatusPending,
		Note:       strings.TrimSpace(req.Note),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := credit.Validate(); err != nil {
		return domain.Credit{}, err
	}

	if err := s.repo.Create(ctx, &credit); err != nil {
		return domain.Credit{}, err
	}

	return credit, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCreditRequest) ([]domain.Credit, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	filter := domain.Credit{OrgID: orgID}
	if value := strings.TrimSpace(req.CustomerID); value != "" {
		id, err := snowflake.ParseString(value)
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidCustomer
		}
		filter.CustomerID = id
	}
	switch creditType := domain.CreditType(strings.ToUpper(strings.TrimSpace(req.Type))); creditType {
	case "":
	case domain.TypeDeposit, domain.TypeWithdrawal, domain.TypeAdvance:
		filter.Type = creditType
	default:
		return nil, domain.ErrInvalidType
	}
	switch status := domain.CreditStatus(strings.ToUpper(strings.TrimSpace(req.Status))); status {
	case "":
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		filter.Status = status
	default:
		return nil, domain.ErrInvalidStatus
	}

	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Default: "credit_date"}),
	}
	if value := strings.TrimSpace(req.From); value != "" {
		from, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "credit_date", Operator: option.GTE, Value: from}))
	}
	if value := strings.TrimSpace(req.To); value != "" {
		to, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		opts = append(opts, option.ApplyOperator(option.Condition{Field: "credit_date", Operator: option.LTE, Value: to}))
	}

	items, err := s.repo.Find(ctx, &filter, opts...)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCreditRequest) (domain.Credit, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Credit{}, domain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Credit{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindOne(ctx, &domain.Credit{ID: id, OrgID: orgID})
	if err != nil {
		return domain.Credit{}, err
	}
	if item == nil {
		return domain.Credit{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateCreditStatusRequest) (domain.Credit, error) {
	credit, err := s.GetByID(ctx, domain.GetCreditRequest{ID: req.ID})
	if err != nil {
		return domain.Credit{}, err
	}

	status := domain.CreditStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
	default:
		return domain.Credit{}, domain.ErrInvalidStatus
	}

	credit.Status = status
	credit.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, credit.ID.String(), map[string]any{
		"status":     credit.Status,
		"updated_at": credit.UpdatedAt,
	}); err != nil {
		return domain.Credit{}, err
	}

	return credit, nil
}

func (s *Service) ListWindow(ctx context.Context, window domain.Window) ([]domain.Credit, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	items, err := s.repo.Find(ctx, &domain.Credit{OrgID: orgID},
		option.ApplyOperator(option.Condition{Field: "credit_date", Operator: option.GTE, Value: window.From}),
		option.ApplyOperator(option.Condition{Field: "credit_date", Operator: option.LTE, Value: window.To}),
		option.ApplyOperator(option.Condition{Field: "status", Operator: option.NEQ, Value: domain.StatusCancelled}),
		option.WithSortBy(option.QuerySortBy{Default: "credit_date"}),
	)
	if err != nil {
		return nil, err
	}

	credits := collect(items)
	for _, credit := range credits {
		if err := credit.Validate(); err != nil {
			return nil, err
		}
	}
	return credits, nil
}

func collect(items []*domain.Credit) []domain.Credit {
	credits := make([]domain.Credit, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		credits = append(credits, *item)
	}
	return credits
}
