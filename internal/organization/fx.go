package organization

import (
	"github.com/smallbiznis/crewbill/internal/organization/domain"
	"github.com/smallbiznis/crewbill/internal/organization/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.ProvideStore[domain.Organization]),
	fx.Provide(service.New),
)
