package test

import (
	"context"
	"sync"
	"time"

	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, error)
	CurrentUserFn  func(context.Context, int64) (*model.User, error)
}

// Register returns a doctor account for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, password, inviteCode string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password, inviteCode)
	}
	return &model.User{ID: 1, Role: model.RoleDoctor, Name: name, Email: email}, "token", nil
}

// Authenticate returns user and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Role: model.RoleDoctor, Email: login}, "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// CurrentUser resolves the account behind a session.
func (s AuthFacadeStub) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	if s.CurrentUserFn != nil {
		return s.CurrentUserFn(ctx, userID)
	}
	return &model.User{ID: userID, Role: model.RoleDoctor, Name: "Dra. Prueba"}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PrepareFn func(context.Context, int64, usecase.IntakeForm) (string, *model.Order, error)
	ConfirmFn func(context.Context, int64, string, bool) (*model.Order, bool, error)
	OrdersFn  func(context.Context, int64, usecase.ProjectionOptions) ([]model.Order, usecase.KPI, error)
	OrderFn   func(context.Context, int64, string) (*model.Order, []model.OrderLink, error)
	UpdateFn  func(context.Context, int64, string, model.OrderStatus, string) (*model.Order, error)
}

// PrepareOrder delegates to the override or returns a default draft.
func (s OrderFacadeStub) PrepareOrder(ctx context.Context, userID int64, form usecase.IntakeForm) (string, *model.Order, error) {
	if s.PrepareFn != nil {
		return s.PrepareFn(ctx, userID, form)
	}
	return "confirm-token", &model.Order{ID: "draft", DoctorID: userID, Status: model.OrderStatusPending}, nil
}

// ConfirmOrder resolves a pending confirmation.
func (s OrderFacadeStub) ConfirmOrder(ctx context.Context, userID int64, token string, accept bool) (*model.Order, bool, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, userID, token, accept)
	}
	if !accept {
		return nil, false, nil
	}
	return &model.Order{ID: "o1", Folio: "ORL-000001", DoctorID: userID, Status: model.OrderStatusPending}, true, nil
}

// Orders returns predefined orders with their totals.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, opts usecase.ProjectionOptions) ([]model.Order, usecase.KPI, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, opts)
	}
	orders := []model.Order{{ID: "o1", Folio: "ORL-000001", Status: model.OrderStatusPending}}
	return orders, usecase.CountKPIs(orders), nil
}

// Order returns one order with its attachments.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderLink, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil, nil
}

// UpdateOrder records status and notes changes.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, userID int64, orderID string, status model.OrderStatus, notes string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, orderID, status, notes)
	}
	return &model.Order{ID: orderID, Status: status, Notes: notes}, nil
}

// LinkFacadeStub simulates attachment operations.
type LinkFacadeStub struct {
	AddFn    func(context.Context, int64, string, string, string, string) (*model.OrderLink, error)
	DeleteFn func(context.Context, int64, string) error
	UploadFn func(context.Context, int64, string, []usecase.FileUpload) ([]model.OrderLink, error)
}

// AddLink returns the stored attachment.
func (s LinkFacadeStub) AddLink(ctx context.Context, userID int64, orderID, title, url, provider string) (*model.OrderLink, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, orderID, title, url, provider)
	}
	return &model.OrderLink{ID: "l1", OrderID: orderID, Title: title, URL: url, Provider: provider, CreatedBy: userID}, nil
}

// DeleteLink executes configured deletion handler.
func (s LinkFacadeStub) DeleteLink(ctx context.Context, userID int64, linkID string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, userID, linkID)
	}
	return nil
}

// UploadOrderFiles stores the batch and returns one link per file.
func (s LinkFacadeStub) UploadOrderFiles(ctx context.Context, userID int64, orderID string, files []usecase.FileUpload) ([]model.OrderLink, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, userID, orderID, files)
	}
	links := make([]model.OrderLink, 0, len(files))
	for _, f := range files {
		links = append(links, model.OrderLink{ID: f.Name, OrderID: orderID, Title: f.Name, Provider: model.LinkProviderStorage, CreatedBy: userID})
	}
	return links, nil
}

// AdminFacadeStub simulates administration endpoints.
type AdminFacadeStub struct {
	IssueFn   func(context.Context, int64, string, string, int) (*model.Invite, error)
	DoctorsFn func(context.Context, int64) ([]model.User, error)
}

// IssueInvite returns a freshly generated registration code.
func (s AdminFacadeStub) IssueInvite(ctx context.Context, userID int64, doctorName, doctorEmail string, days int) (*model.Invite, error) {
	if s.IssueFn != nil {
		return s.IssueFn(ctx, userID, doctorName, doctorEmail, days)
	}
	return &model.Invite{
		ID:          "inv-1",
		Code:        "SD-ABC234",
		DoctorName:  doctorName,
		DoctorEmail: doctorEmail,
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
	}, nil
}

// Doctors returns the configured roster.
func (s AdminFacadeStub) Doctors(ctx context.Context, userID int64) ([]model.User, error) {
	if s.DoctorsFn != nil {
		return s.DoctorsFn(ctx, userID)
	}
	return []model.User{{ID: 2, Role: model.RoleDoctor, Name: "Dra. Prueba"}}, nil
}

// ClinicFacadeStub aggregates facade dependencies for HTTP layer tests.
type ClinicFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	LinkFacadeStub
	AdminFacadeStub
}

// SweepCall stores information about SweepExpiredInvites invocations.
type SweepCall struct {
	At time.Time
}

// InviteSweepStub mimics the worker contract for expired invite cleanup.
type InviteSweepStub struct {
	SweepFn func(context.Context, time.Time) (int64, error)

	mu    sync.Mutex
	Calls []SweepCall
}

// SweepExpiredInvites records invocations and returns configured counts.
func (s *InviteSweepStub) SweepExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, SweepCall{At: now})
	s.mu.Unlock()
	if s.SweepFn != nil {
		return s.SweepFn(ctx, now)
	}
	return 0, nil
}

// CallCount reports how many sweeps ran so far.
func (s *InviteSweepStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
