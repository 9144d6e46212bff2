package repository

import (
	"context"
	"time"

	"github.com/scandent/orline/internal/domain/model"
)

// InviteRepository manages doctor registration codes.
type InviteRepository interface {
	Create(ctx context.Context, invite *model.Invite) (*model.Invite, error)
	GetByCode(ctx context.Context, code string) (*model.Invite, error)
	MarkUsed(ctx context.Context, inviteID string, userID int64, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
