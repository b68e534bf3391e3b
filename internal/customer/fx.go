package customer

import (
	"github.com/smallbiznis/crewbill/internal/customer/domain"
	"github.com/smallbiznis/crewbill/internal/customer/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.ProvideStore[domain.Customer]),
	fx.Provide(service.New),
)
