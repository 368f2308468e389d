package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/migration"
	"github.com/billfold/billfold/internal/observability"
	"github.com/billfold/billfold/internal/server"
	"github.com/billfold/billfold/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
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
