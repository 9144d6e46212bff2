package repository

import (
	"context"

	"github.com/scandent/orline/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	// GetByLogin matches email or username, case-insensitively.
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}
