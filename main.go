package main

import (
	"flag"

	"github.com/EATMove/CDT-sub001/internal/admin"
	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/database"
	"github.com/EATMove/CDT-sub001/internal/middleware"
	"github.com/EATMove/CDT-sub001/internal/mobile"
	"github.com/EATMove/CDT-sub001/internal/repository"
	"github.com/EATMove/CDT-sub001/internal/server"
	"github.com/EATMove/CDT-sub001/internal/sso"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	var path = flag.String("config", "config/config.yaml", "path to the yaml config file")
	flag.Parse()

	configPath := func() config.Path {
		return config.Path(*path)
	}

	app := fx.New(
		fx.Provide(
			configPath,
			config.New,
			newLogger,
			clockwork.NewRealClock,
			database.New,
			repository.NewSQL,
			middleware.NewSessionManager,
			sso.New,
			server.New,
		),
		admin.Module,
		mobile.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(server.RegisterHooks),
	)

	app.Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
