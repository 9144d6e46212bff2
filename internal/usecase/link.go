package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
	"github.com/scandent/orline/internal/pkg/upload"
)

// FileStore abstracts the object-storage boundary used for attachments.
type FileStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// FileUpload is one in-memory file received from the browser.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// LinkUseCase manages order attachments: stored files and external URLs.
type LinkUseCase struct {
	orders repository.OrderRepository
	links  repository.LinkRepository
	store  FileStore
}

// NewLinkUseCase constructs LinkUseCase.
func NewLinkUseCase(orders repository.OrderRepository, links repository.LinkRepository, store FileStore) *LinkUseCase {
	return &LinkUseCase{orders: orders, links: links, store: store}
}

// List returns the attachments of an order the actor may view.
func (u *LinkUseCase) List(ctx context.Context, actor Actor, orderID string) ([]model.OrderLink, error) {
	if _, err := u.viewable(ctx, actor, orderID); err != nil {
		return nil, err
	}
	return u.links.ListByOrder(ctx, orderID)
}

// Add records an external URL as an attachment. Attachments are only created
// while the parent order is in process; any other status fails before any
// boundary call, naming the required state.
func (u *LinkUseCase) Add(ctx context.Context, actor Actor, orderID, title, url, provider string) (*model.OrderLink, error) {
	order, err := u.mutable(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domainErrors.NewValidation("Pon un link válido.")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Archivo"
	}
	if provider == "" {
		provider = model.LinkProviderOther
	}

	return u.links.Create(ctx, &model.OrderLink{
		OrderID:   order.ID,
		Title:     title,
		URL:       url,
		Provider:  provider,
		CreatedBy: actor.UserID,
	})
}

// Delete removes an attachment by id. Allowed at any order status.
func (u *LinkUseCase) Delete(ctx context.Context, actor Actor, linkID string) error {
	if !actor.Role.CanManageOrders() {
		return domainErrors.ErrReadOnlyRole
	}
	return u.links.Delete(ctx, linkID)
}

// UploadFiles transfers a batch of files for one order. Every file is checked
// against the attachment policy before any file in the batch is transferred;
// the transfer itself is strictly sequential and a failure aborts the rest of
// the batch without creating links for files not yet reached.
func (u *LinkUseCase) UploadFiles(ctx context.Context, actor Actor, orderID string, files []FileUpload) ([]model.OrderLink, error) {
	order, err := u.mutable(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if err := upload.Validate(f.Name, int64(len(f.Data)), f.ContentType); err != nil {
			return nil, err
		}
	}

	created := make([]model.OrderLink, 0, len(files))
	for _, f := range files {
		ct := f.ContentType
		if ct == "" {
			ct = upload.ContentTypeByExt(upload.Ext(f.Name))
		}

		path := upload.StoragePath(order.ID, f.Name, time.Now())
		url, err := u.store.Upload(ctx, path, f.Data, ct)
		if err != nil {
			return created, err
		}

		link, err := u.links.Create(ctx, &model.OrderLink{
			OrderID:   order.ID,
			Title:     f.Name,
			URL:       url,
			Provider:  model.LinkProviderStorage,
			CreatedBy: actor.UserID,
		})
		if err != nil {
			return created, err
		}
		created = append(created, *link)
	}
	return created, nil
}

func (u *LinkUseCase) viewable(ctx context.Context, actor Actor, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, order) {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// mutable resolves an order the actor may attach to: manage-capable role and
// status exactly process.
func (u *LinkUseCase) mutable(ctx context.Context, actor Actor, orderID string) (*model.Order, error) {
	if !actor.Role.CanManageOrders() {
		return nil, domainErrors.ErrReadOnlyRole
	}
	order, err := u.viewable(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusProcess {
		return nil, &domainErrors.StatusLockedError{
			Current:  string(order.Status),
			Required: string(model.OrderStatusProcess),
		}
	}
	return order, nil
}
