package repository

import (
	"context"

	"github.com/scandent/orline/internal/domain/model"
)

// LinkRepository provides access to order attachments.
type LinkRepository interface {
	Create(ctx context.Context, link *model.OrderLink) (*model.OrderLink, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.OrderLink, error)
	Delete(ctx context.Context, linkID string) error
}
