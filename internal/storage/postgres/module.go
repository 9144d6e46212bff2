package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/scandent/orline/internal/config"
	"github.com/scandent/orline/internal/domain/repository"
	"github.com/scandent/orline/internal/pkg/auth"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.LinkRepository { return s.Links() },
		func(s *Storage) repository.InviteRepository { return s.Invites() },
	),
	fx.Invoke(registerLifecycle),
	fx.Invoke(seedAccounts),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}

type seedParams struct {
	fx.In

	Ctx     context.Context
	Config  *config.Config
	Storage *Storage
	Hasher  auth.PasswordHasher
}

// seedAccounts creates the default team and administrator account when an
// admin password is configured.
func seedAccounts(p seedParams) error {
	if p.Config.AdminPassword == "" {
		return nil
	}
	teamID, err := p.Storage.EnsureTeam(p.Ctx, "Laboratorio")
	if err != nil {
		return err
	}
	hash, err := p.Hasher.Hash(p.Config.AdminPassword)
	if err != nil {
		return err
	}
	return p.Storage.EnsureAdmin(p.Ctx, p.Config.AdminLogin, hash, teamID)
}
