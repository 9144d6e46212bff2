package app

import (
	"context"
	"time"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/usecase"
)

// ClinicFacade aggregates the use cases behind a single application surface.
// Handlers and the worker talk to it with the session's user id; the facade
// resolves the id into an actor before delegating.
type ClinicFacade struct {
	auth    *usecase.AuthUseCase
	intake  *usecase.IntakeUseCase
	orders  *usecase.OrderUseCase
	links   *usecase.LinkUseCase
	invites *usecase.InviteUseCase
}

func NewClinicFacade(
	auth *usecase.AuthUseCase,
	intake *usecase.IntakeUseCase,
	orders *usecase.OrderUseCase,
	links *usecase.LinkUseCase,
	invites *usecase.InviteUseCase,
) *ClinicFacade {
	return &ClinicFacade{auth: auth, intake: intake, orders: orders, links: links, invites: invites}
}

// actor loads the session user and rejects blocked accounts mid-session.
func (f *ClinicFacade) actor(ctx context.Context, userID int64) (usecase.Actor, error) {
	usr, err := f.auth.GetByID(ctx, userID)
	if err != nil {
		return usecase.Actor{}, err
	}
	if usr.Blocked {
		return usecase.Actor{}, domainErrors.ErrBlockedUser
	}
	return usecase.Actor{UserID: usr.ID, Role: usr.Role, TeamID: usr.TeamID}, nil
}

func (f *ClinicFacade) Register(ctx context.Context, name, email, password, inviteCode string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password, inviteCode)
}

func (f *ClinicFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *ClinicFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ClinicFacade) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *ClinicFacade) PrepareOrder(ctx context.Context, userID int64, form usecase.IntakeForm) (string, *model.Order, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	return f.intake.Prepare(ctx, form, actor)
}

func (f *ClinicFacade) ConfirmOrder(ctx context.Context, userID int64, token string, accept bool) (*model.Order, bool, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return f.intake.Confirm(ctx, actor, token, accept)
}

func (f *ClinicFacade) Orders(ctx context.Context, userID int64, opts usecase.ProjectionOptions) ([]model.Order, usecase.KPI, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, usecase.KPI{}, err
	}
	orders, err := f.orders.List(ctx, actor, opts)
	if err != nil {
		return nil, usecase.KPI{}, err
	}
	return orders, usecase.CountKPIs(orders), nil
}

func (f *ClinicFacade) Order(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderLink, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	order, err := f.orders.Get(ctx, actor, orderID)
	if err != nil {
		return nil, nil, err
	}
	links, err := f.links.List(ctx, actor, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, links, nil
}

func (f *ClinicFacade) UpdateOrder(ctx context.Context, userID int64, orderID string, status model.OrderStatus, notes string) (*model.Order, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.orders.Update(ctx, actor, orderID, status, notes)
}

func (f *ClinicFacade) AddLink(ctx context.Context, userID int64, orderID, title, url, provider string) (*model.OrderLink, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.links.Add(ctx, actor, orderID, title, url, provider)
}

func (f *ClinicFacade) DeleteLink(ctx context.Context, userID int64, linkID string) error {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return err
	}
	return f.links.Delete(ctx, actor, linkID)
}

func (f *ClinicFacade) UploadOrderFiles(ctx context.Context, userID int64, orderID string, files []usecase.FileUpload) ([]model.OrderLink, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.links.UploadFiles(ctx, actor, orderID, files)
}

func (f *ClinicFacade) IssueInvite(ctx context.Context, userID int64, doctorName, doctorEmail string, days int) (*model.Invite, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.invites.Issue(ctx, actor, doctorName, doctorEmail, days)
}

func (f *ClinicFacade) Doctors(ctx context.Context, userID int64) ([]model.User, error) {
	actor, err := f.actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.auth.ListDoctors(ctx, actor)
}

func (f *ClinicFacade) SweepExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	return f.invites.SweepExpired(ctx, now)
}
