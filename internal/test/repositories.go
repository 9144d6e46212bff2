package test

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the login is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	for _, login := range []string{user.Email, user.Username} {
		if login == "" {
			continue
		}
		if _, exists := s.Users[strings.ToLower(login)]; exists {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	s.Next++
	if stored.Email != "" {
		s.Users[strings.ToLower(stored.Email)] = &stored
	}
	if stored.Username != "" {
		s.Users[strings.ToLower(stored.Username)] = &stored
	}
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByLogin fetches user by email or username or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[strings.ToLower(login)]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByRole returns all stored users with the given role.
func (s *UserRepositoryStub) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.User
	for _, user := range s.ByID {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn  func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn func(context.Context, string) (*model.Order, error)
	ListFn    func(context.Context, repository.OrderFilter) ([]model.Order, error)
	UpdateFn  func(context.Context, string, model.OrderStatus, string) error

	Orders      []model.Order
	Created     []model.Order
	UpdateCalls []OrderUpdateCall
	NextFolio   int
}

// OrderUpdateCall stores information about UpdateStatusNotes invocations.
type OrderUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
	Notes   string
}

// Create tracks invocations and assigns sequential folios.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.NextFolio++
	stored := *order
	stored.Folio = fmt.Sprintf("ORL-%06d", s.NextFolio)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = stored.CreatedAt
	s.Created = append(s.Created, stored)
	s.Orders = append(s.Orders, stored)
	return &stored, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List applies the filter to the configured slice.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if filter.DoctorID != 0 && o.DoctorID != filter.DoctorID {
			continue
		}
		if filter.TeamID != 0 && o.TeamID != filter.TeamID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// UpdateStatusNotes records update invocations and mutates stored orders.
func (s *OrderRepositoryStub) UpdateStatusNotes(ctx context.Context, id string, status model.OrderStatus, notes string) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, status, notes)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: id, Status: status, Notes: notes})
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].Status = status
			s.Orders[i].Notes = notes
			s.Orders[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// LinkRepositoryStub stores order attachments for tests.
type LinkRepositoryStub struct {
	CreateFn func(context.Context, *model.OrderLink) (*model.OrderLink, error)
	ListFn   func(context.Context, string) ([]model.OrderLink, error)
	DeleteFn func(context.Context, string) error

	Links []model.OrderLink
	Next  int
}

// Create stores the link with a generated identifier.
func (s *LinkRepositoryStub) Create(ctx context.Context, link *model.OrderLink) (*model.OrderLink, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, link)
	}
	s.Next++
	stored := *link
	stored.ID = fmt.Sprintf("link-%d", s.Next)
	stored.CreatedAt = time.Now()
	s.Links = append(s.Links, stored)
	return &stored, nil
}

// ListByOrder returns attachments of one order.
func (s *LinkRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.OrderLink, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, orderID)
	}
	var out []model.OrderLink
	for _, l := range s.Links {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Delete removes the link or reports not found.
func (s *LinkRepositoryStub) Delete(ctx context.Context, linkID string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, linkID)
	}
	for i, l := range s.Links {
		if l.ID == linkID {
			s.Links = append(s.Links[:i], s.Links[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// InviteRepositoryStub keeps registration codes in-memory for tests.
type InviteRepositoryStub struct {
	CreateFn        func(context.Context, *model.Invite) (*model.Invite, error)
	GetByCodeFn     func(context.Context, string) (*model.Invite, error)
	MarkUsedFn      func(context.Context, string, int64, time.Time) error
	DeleteExpiredFn func(context.Context, time.Time) (int64, error)

	Invites []model.Invite
	Next    int
}

// Create stores the invite with a generated identifier.
func (s *InviteRepositoryStub) Create(ctx context.Context, invite *model.Invite) (*model.Invite, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, invite)
	}
	s.Next++
	stored := *invite
	stored.ID = fmt.Sprintf("inv-%d", s.Next)
	stored.CreatedAt = time.Now()
	s.Invites = append(s.Invites, stored)
	return &stored, nil
}

// GetByCode finds an invite by its code or reports not found.
func (s *InviteRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Invite, error) {
	if s.GetByCodeFn != nil {
		return s.GetByCodeFn(ctx, code)
	}
	for _, inv := range s.Invites {
		if inv.Code == code {
			invite := inv
			return &invite, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// MarkUsed claims an unclaimed invite.
func (s *InviteRepositoryStub) MarkUsed(ctx context.Context, inviteID string, userID int64, at time.Time) error {
	if s.MarkUsedFn != nil {
		return s.MarkUsedFn(ctx, inviteID, userID, at)
	}
	for i := range s.Invites {
		if s.Invites[i].ID == inviteID && s.Invites[i].UsedAt == nil {
			used := at
			s.Invites[i].UsedAt = &used
			s.Invites[i].UsedByUserID = &userID
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// DeleteExpired removes unused invites past the cutoff and reports the count.
func (s *InviteRepositoryStub) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if s.DeleteExpiredFn != nil {
		return s.DeleteExpiredFn(ctx, before)
	}
	var kept []model.Invite
	var removed int64
	for _, inv := range s.Invites {
		if inv.UsedAt == nil && inv.ExpiresAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, inv)
	}
	s.Invites = kept
	return removed, nil
}

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.LinkRepository = (*LinkRepositoryStub)(nil)
var _ repository.InviteRepository = (*InviteRepositoryStub)(nil)
