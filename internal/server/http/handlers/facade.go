package handlers

import (
	"context"

	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password, inviteCode string) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	CurrentUser(ctx context.Context, userID int64) (*model.User, error)
}

// OrderFacade encapsulates order intake and lifecycle operations.
type OrderFacade interface {
	PrepareOrder(ctx context.Context, userID int64, form usecase.IntakeForm) (string, *model.Order, error)
	ConfirmOrder(ctx context.Context, userID int64, token string, accept bool) (*model.Order, bool, error)
	Orders(ctx context.Context, userID int64, opts usecase.ProjectionOptions) ([]model.Order, usecase.KPI, error)
	Order(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderLink, error)
	UpdateOrder(ctx context.Context, userID int64, orderID string, status model.OrderStatus, notes string) (*model.Order, error)
}

// LinkFacade manages order attachments.
type LinkFacade interface {
	AddLink(ctx context.Context, userID int64, orderID, title, url, provider string) (*model.OrderLink, error)
	DeleteLink(ctx context.Context, userID int64, linkID string) error
	UploadOrderFiles(ctx context.Context, userID int64, orderID string, files []usecase.FileUpload) ([]model.OrderLink, error)
}

// AdminFacade exposes administration operations.
type AdminFacade interface {
	IssueInvite(ctx context.Context, userID int64, doctorName, doctorEmail string, days int) (*model.Invite, error)
	Doctors(ctx context.Context, userID int64) ([]model.User, error)
}

// ClinicFacade aggregates the full set of operations used across handlers.
type ClinicFacade interface {
	AuthFacade
	OrderFacade
	LinkFacade
	AdminFacade
}
