package laborer

import (
	"github.com/smallbiznis/crewbill/internal/laborer/domain"
	"github.com/smallbiznis/crewbill/internal/laborer/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("laborer.service",
	fx.Provide(repository.ProvideStore[domain.Laborer]),
	fx.Provide(service.New),
)
