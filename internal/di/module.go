package di

import (
	"go.uber.org/fx"

	"github.com/scandent/orline/internal/adapter/filestore"
	"github.com/scandent/orline/internal/app"
	"github.com/scandent/orline/internal/config"
	"github.com/scandent/orline/internal/logger"
	"github.com/scandent/orline/internal/pkg/auth"
	"github.com/scandent/orline/internal/server/http/handlers"
	"github.com/scandent/orline/internal/server/http/router"
	"github.com/scandent/orline/internal/storage/postgres"
	"github.com/scandent/orline/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		filestore.Module,
		usecase.Module,
		fx.Provide(func(client filestore.Client) usecase.FileStore { return client }),
		fx.Provide(func(facade *app.ClinicFacade) handlers.ClinicFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
