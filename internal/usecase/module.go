package usecase

import (
	"go.uber.org/fx"

	"github.com/scandent/orline/internal/config"
	"github.com/scandent/orline/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewConfirmationGate,
	NewAuthUseCase,
	NewIntakeUseCase,
	NewOrderUseCase,
	NewLinkUseCase,
	newInviteUseCase,
)

type inviteParams struct {
	fx.In

	Invites repository.InviteRepository
	Config  *config.Config
}

func newInviteUseCase(p inviteParams) *InviteUseCase {
	return NewInviteUseCase(p.Invites, p.Config.InviteTTLDays)
}
