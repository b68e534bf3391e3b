package providers

import (
	"github.com/smallbiznis/crewbill/internal/providers/pdf"
	"github.com/smallbiznis/crewbill/internal/providers/xlsx"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	fx.Provide(pdf.New),
	fx.Provide(xlsx.New),
)
