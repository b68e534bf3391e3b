package job

import (
	"github.com/smallbiznis/crewbill/internal/job/domain"
	"github.com/smallbiznis/crewbill/internal/job/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("job.service",
	fx.Provide(repository.ProvideStore[domain.Job]),
	fx.Provide(service.New),
)
