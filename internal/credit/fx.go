package credit

import (
	"github.com/smallbiznis/crewbill/internal/credit/domain"
	"github.com/smallbiznis/crewbill/internal/credit/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("credit.service",
	fx.Provide(repository.ProvideStore[domain.Credit]),
	fx.Provide(service.New),
)
