package expense

import (
	"github.com/smallbiznis/crewbill/internal/expense/domain"
	"github.com/smallbiznis/crewbill/internal/expense/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(repository.ProvideStore[domain.Expense]),
	fx.Provide(service.New),
)
