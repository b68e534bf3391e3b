package timesheet

import (
	"github.com/smallbiznis/crewbill/internal/timesheet/domain"
	"github.com/smallbiznis/crewbill/internal/timesheet/service"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("timesheet.service",
	fx.Provide(repository.ProvideStore[domain.Timesheet]),
	fx.Provide(service.New),
)
