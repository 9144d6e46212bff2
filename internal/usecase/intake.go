package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
)

// IntakeForm is the raw multi-section order form as submitted by a doctor.
type IntakeForm struct {
	Patient  model.Patient
	Referred model.ReferringDoctor

	Study        model.StudyTag
	StudyDetails model.StudyDetails

	CBCT     model.CBCT
	Delivery model.Delivery

	DoctorNotes string
}

// DigitsOnly strips everything but decimal digits from a phone value.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildOrder assembles an immutable order payload from the form and session.
// It trims strings, normalizes the phone to digits, defaults the delivery
// preference, derives the study line and stamps equal created/updated times.
// It does not persist and never consults mutable shared state.
func BuildOrder(form IntakeForm, actor Actor) *model.Order {
	sel := model.NewSelection()
	sel.Activate(form.Study)
	sel.SetDetails(form.Study, form.StudyDetails)
	snapshot := sel.Snapshot()

	now := time.Now().UTC()

	order := &model.Order{
		ID:       uuid.NewString(),
		DoctorID: actor.UserID,
		TeamID:   actor.TeamID,
		Patient: model.Patient{
			Name:    strings.TrimSpace(form.Patient.Name),
			Phone:   DigitsOnly(form.Patient.Phone),
			Age:     strings.TrimSpace(form.Patient.Age),
			DOB:     strings.TrimSpace(form.Patient.DOB),
			Address: strings.TrimSpace(form.Patient.Address),
		},
		Referred: model.ReferringDoctor{
			Name:   strings.TrimSpace(form.Referred.Name),
			Cedula: strings.TrimSpace(form.Referred.Cedula),
			Phone:  DigitsOnly(form.Referred.Phone),
			Email:  strings.ToLower(strings.TrimSpace(form.Referred.Email)),
		},
		Selection:   snapshot,
		CBCT:        form.CBCT.Normalize(),
		Delivery:    model.NormalizeDelivery(form.Delivery),
		Status:      model.OrderStatusPending,
		DoctorNotes: strings.TrimSpace(form.DoctorNotes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	order.StudyLine = model.BuildStudyLine(order.Selection, order.Referred.Name)
	return order
}

// IntakeUseCase drives the order intake flow: build, validate, gate, persist.
type IntakeUseCase struct {
	orders repository.OrderRepository
	gate   *ConfirmationGate
}

// NewIntakeUseCase constructs IntakeUseCase.
func NewIntakeUseCase(orders repository.OrderRepository, gate *ConfirmationGate) *IntakeUseCase {
	return &IntakeUseCase{orders: orders, gate: gate}
}

// Prepare builds and validates a draft order and parks it behind the
// confirmation gate. Only doctors submit orders. Returns the gate token and
// the draft for summary rendering.
func (u *IntakeUseCase) Prepare(ctx context.Context, form IntakeForm, actor Actor) (string, *model.Order, error) {
	if actor.Role != model.RoleDoctor {
		return "", nil, domainErrors.ErrReadOnlyRole
	}

	order := BuildOrder(form, actor)
	if err := ValidateOrder(order); err != nil {
		return "", nil, err
	}

	token, err := u.gate.Begin(actor.UserID, order)
	if err != nil {
		return "", nil, err
	}
	return token, order, nil
}

// Confirm resolves a pending draft. On accept the untouched payload is
// persisted in a single call; on cancel nothing is written and the doctor
// returns to editing. Returns the persisted order and whether it was created.
func (u *IntakeUseCase) Confirm(ctx context.Context, actor Actor, token string, accept bool) (*model.Order, bool, error) {
	draft, err := u.gate.Resolve(actor.UserID, token, accept)
	if err != nil {
		return nil, false, err
	}
	if !accept {
		return nil, false, nil
	}

	stored, err := u.orders.Create(ctx, draft)
	if err != nil {
		// Nothing was committed; the doctor may retry the same confirm.
		if rerr := u.gate.Restore(actor.UserID, token, draft); rerr != nil && !errors.Is(rerr, domainErrors.ErrConfirmationPending) {
			return nil, false, err
		}
		return nil, false, err
	}
	return stored, true, nil
}
