package supply

import (
	"github.com/smallbiznis/crewbill/internal/supply/domain"
	"github.com/smallbiznis/crewbill/internal/supply/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("supply.service",
	fx.Provide(repository.ProvideStore[domain.Supply]),
	fx.Provide(service.New),
)
