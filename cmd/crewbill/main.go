package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/clock"
	"github.com/smallbiznis/crewbill/internal/config"
	"github.com/smallbiznis/crewbill/internal/migration"
	"github.com/smallbiznis/crewbill/internal/observability"
	"github.com/smallbiznis/crewbill/internal/server"
	"github.com/smallbiznis/crewbill/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
