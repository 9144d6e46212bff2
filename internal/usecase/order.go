package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
)

// OrderUseCase encapsulates order listing and lifecycle mutations.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// List returns the actor's visible orders with the projection applied:
// doctors get their own submissions, employees and admins the team's.
func (u *OrderUseCase) List(ctx context.Context, actor Actor, opts ProjectionOptions) ([]model.Order, error) {
	var filter repository.OrderFilter
	switch actor.Role {
	case model.RoleDoctor:
		filter.DoctorID = actor.UserID
	case model.RoleEmployee, model.RoleAdmin:
		if actor.TeamID == 0 {
			return nil, domainErrors.ErrNoTeam
		}
		filter.TeamID = actor.TeamID
	default:
		return nil, domainErrors.ErrReadOnlyRole
	}

	orders, err := u.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Project(orders, opts), nil
}

// Get opens one order; a missing or foreign order yields ErrNotFound so the
// caller can render an explicit "could not open" message.
func (u *OrderUseCase) Get(ctx context.Context, actor Actor, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, order) {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// Update sets status and internal notes in one write. Only employee and admin
// roles mutate orders; doctors are strictly read-only over status. Every
// mutation refreshes the order's updatedAt at the persistence layer.
func (u *OrderUseCase) Update(ctx context.Context, actor Actor, id string, status model.OrderStatus, notes string) (*model.Order, error) {
	if !actor.Role.CanManageOrders() {
		return nil, domainErrors.ErrReadOnlyRole
	}
	if !model.ValidStatus(status) {
		return nil, domainErrors.NewValidation("Estatus inválido.")
	}

	order, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := u.orders.UpdateStatusNotes(ctx, order.ID, status, strings.TrimSpace(notes)); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, order.ID)
}
