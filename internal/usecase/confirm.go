package usecase

import (
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
)

// ConfirmationGate interposes an explicit accept/cancel decision between
// validation and persistence. Each doctor holds at most one pending draft at
// a time; the draft is handed back byte-for-byte untouched when resolved.
// There is no timeout: a draft waits until resolved or replaced by cancel.
type ConfirmationGate struct {
	mu      sync.Mutex
	byToken map[string]*pendingDraft
	byOwner map[int64]string
}

type pendingDraft struct {
	ownerID int64
	order   *model.Order
}

// NewConfirmationGate constructs an empty gate.
func NewConfirmationGate() *ConfirmationGate {
	return &ConfirmationGate{
		byToken: make(map[string]*pendingDraft),
		byOwner: make(map[int64]string),
	}
}

// Begin parks a validated draft and returns its confirmation token. A second
// draft for the same owner is rejected until the first is resolved.
func (g *ConfirmationGate) Begin(ownerID int64, order *model.Order) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.byOwner[ownerID]; busy {
		return "", domainErrors.ErrConfirmationPending
	}

	token := uuid.NewString()
	g.byToken[token] = &pendingDraft{ownerID: ownerID, order: order}
	g.byOwner[ownerID] = token
	return token, nil
}

// Peek returns the pending draft for read-only summary rendering.
func (g *ConfirmationGate) Peek(ownerID int64, token string) (*model.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	draft, ok := g.byToken[token]
	if !ok || draft.ownerID != ownerID {
		return nil, domainErrors.ErrConfirmationUnknown
	}
	return draft.order, nil
}

// Resolve pops the pending draft. The accept flag is recorded by the caller;
// the gate only guarantees the draft is released exactly once.
func (g *ConfirmationGate) Resolve(ownerID int64, token string, accept bool) (*model.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	draft, ok := g.byToken[token]
	if !ok || draft.ownerID != ownerID {
		return nil, domainErrors.ErrConfirmationUnknown
	}

	delete(g.byToken, token)
	delete(g.byOwner, draft.ownerID)
	return draft.order, nil
}

// Restore re-parks a draft under its original token after a failed
// persistence attempt, so the doctor can retry the exact same action.
func (g *ConfirmationGate) Restore(ownerID int64, token string, order *model.Order) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.byOwner[ownerID]; busy {
		return domainErrors.ErrConfirmationPending
	}
	g.byToken[token] = &pendingDraft{ownerID: ownerID, order: order}
	g.byOwner[ownerID] = token
	return nil
}
