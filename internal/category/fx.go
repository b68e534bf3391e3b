package category

import (
	"github.com/smallbiznis/crewbill/internal/category/domain"
	"github.com/smallbiznis/crewbill/internal/category/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("category.service",
	fx.Provide(repository.ProvideStore[domain.Category]),
	fx.Provide(service.New),
)
