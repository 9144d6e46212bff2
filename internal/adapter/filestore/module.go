package filestore

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/scandent/orline/internal/config"
)

// Module exposes the file store client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.FileStoreAddress, p.Logger)
}
