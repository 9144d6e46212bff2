package repository

import (
	"context"

	"github.com/scandent/orline/internal/domain/model"
)

// OrderFilter scopes a listing to one tenant or one owning doctor.
type OrderFilter struct {
	TeamID   int64
	DoctorID int64
}

// OrderRepository describes persistence operations with orders. Create assigns
// the folio and returns the stored row; updates are last-write-wins.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	UpdateStatusNotes(ctx context.Context, id string, status model.OrderStatus, notes string) error
}
