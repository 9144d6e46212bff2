package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
)

type stubOrderRepository struct {
	createFn func(context.Context, *model.Order) (*model.Order, error)
	getFn    func(context.Context, string) (*model.Order, error)
	listFn   func(context.Context, repository.OrderFilter) ([]model.Order, error)
	updateFn func(context.Context, string, model.OrderStatus, string) error
}

func (s stubOrderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	if s.createFn == nil {
		panic("not implemented")
	}
	return s.createFn(ctx, o)
}

func (s stubOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.getFn == nil {
		panic("not implemented")
	}
	return s.getFn(ctx, id)
}

func (s stubOrderRepository) List(ctx context.Context, f repository.OrderFilter) ([]model.Order, error) {
	if s.listFn == nil {
		panic("not implemented")
	}
	return s.listFn(ctx, f)
}

func (s stubOrderRepository) UpdateStatusNotes(ctx context.Context, id string, st model.OrderStatus, notes string) error {
	if s.updateFn == nil {
		panic("not implemented")
	}
	return s.updateFn(ctx, id, st, notes)
}

func doctorActor() Actor {
	return Actor{UserID: 7, Role: model.RoleDoctor, TeamID: 1}
}

func validForm() IntakeForm {
	return IntakeForm{
		Patient:      model.Patient{Name: " Ana Torres ", Phone: "(55) 1234-5678 ext9"},
		Referred:     model.ReferringDoctor{Name: "Pérez", Email: " DR@Clinic.MX "},
		Study:        model.StudyRX,
		StudyDetails: model.StudyDetails{Items: []string{"Panorámica", "Lateral"}},
	}
}

func TestBuildOrderNormalizesFields(t *testing.T) {
	order := BuildOrder(validForm(), doctorActor())

	if order.Patient.Name != "Ana Torres" {
		t.Fatalf("expected trimmed name, got %q", order.Patient.Name)
	}
	if order.Patient.Phone != "55123456789" {
		t.Fatalf("expected digits-only phone, got %q", order.Patient.Phone)
	}
	if order.Referred.Email != "dr@clinic.mx" {
		t.Fatalf("expected lowercase email, got %q", order.Referred.Email)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("new orders start pending, got %q", order.Status)
	}
	if order.Delivery.Method != model.DeliveryDigital || order.Delivery.Target != model.DeliverToPatient {
		t.Fatalf("expected default delivery, got %+v", order.Delivery)
	}
	if order.ID == "" {
		t.Fatal("expected generated id")
	}
	if !order.CreatedAt.Equal(order.UpdatedAt) {
		t.Fatal("createdAt and updatedAt must be equal at creation")
	}
	if order.DoctorID != 7 || order.TeamID != 1 {
		t.Fatalf("expected session ownership, got doctor=%d team=%d", order.DoctorID, order.TeamID)
	}
}

func TestBuildOrderDerivesStudyLine(t *testing.T) {
	order := BuildOrder(validForm(), doctorActor())
	want := "Estudio: Radiografías Digitales: Panorámica, Lateral | Referido: Pérez"
	if order.StudyLine != want {
		t.Fatalf("expected %q, got %q", want, order.StudyLine)
	}
}

func TestBuildOrderNoStudySelected(t *testing.T) {
	form := validForm()
	form.Study = ""
	order := BuildOrder(form, doctorActor())
	if order.Selection.Active != "" {
		t.Fatalf("expected empty selection, got %q", order.Selection.Active)
	}
	if order.StudyLine != "Estudio: — | Referido: Pérez" {
		t.Fatalf("unexpected study line %q", order.StudyLine)
	}
}

func TestIntakePrepareRejectsNonDoctor(t *testing.T) {
	uc := NewIntakeUseCase(stubOrderRepository{}, NewConfirmationGate())
	_, _, err := uc.Prepare(context.Background(), validForm(), Actor{UserID: 2, Role: model.RoleEmployee})
	if !errors.Is(err, domainErrors.ErrReadOnlyRole) {
		t.Fatalf("expected read-only role error, got %v", err)
	}
}

func TestIntakePrepareRejectsInvalidForm(t *testing.T) {
	form := validForm()
	form.Patient.Name = "A"
	uc := NewIntakeUseCase(stubOrderRepository{}, NewConfirmationGate())
	_, _, err := uc.Prepare(context.Background(), form, doctorActor())
	if !domainErrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != MsgPatientName {
		t.Fatalf("expected patient-name message, got %q", err.Error())
	}
}

func TestIntakeConfirmAcceptPersistsUntouchedPayload(t *testing.T) {
	var persisted *model.Order
	repo := stubOrderRepository{createFn: func(_ context.Context, o *model.Order) (*model.Order, error) {
		persisted = o
		stored := *o
		stored.Folio = "ORL-000001"
		return &stored, nil
	}}
	uc := NewIntakeUseCase(repo, NewConfirmationGate())
	actor := doctorActor()

	token, draft, err := uc.Prepare(context.Background(), validForm(), actor)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	order, created, err := uc.Confirm(context.Background(), actor, token, true)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !created {
		t.Fatal("expected order to be created")
	}
	if persisted != draft {
		t.Fatal("the exact validated payload must reach persistence")
	}
	if order.Folio != "ORL-000001" {
		t.Fatalf("expected folio from persistence, got %q", order.Folio)
	}
}

func TestIntakeConfirmCancelWritesNothing(t *testing.T) {
	repo := stubOrderRepository{createFn: func(context.Context, *model.Order) (*model.Order, error) {
		t.Fatal("cancel must not persist")
		return nil, nil
	}}
	uc := NewIntakeUseCase(repo, NewConfirmationGate())
	actor := doctorActor()

	token, _, err := uc.Prepare(context.Background(), validForm(), actor)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	order, created, err := uc.Confirm(context.Background(), actor, token, false)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if created || order != nil {
		t.Fatal("cancel must not create anything")
	}

	// The slot is free again: a new draft can be prepared.
	if _, _, err := uc.Prepare(context.Background(), validForm(), actor); err != nil {
		t.Fatalf("expected slot released after cancel, got %v", err)
	}
}

func TestIntakeConfirmBoundaryFailureAllowsRetry(t *testing.T) {
	boundaryErr := errors.New("network down")
	calls := 0
	repo := stubOrderRepository{createFn: func(_ context.Context, o *model.Order) (*model.Order, error) {
		calls++
		if calls == 1 {
			return nil, boundaryErr
		}
		return o, nil
	}}
	uc := NewIntakeUseCase(repo, NewConfirmationGate())
	actor := doctorActor()

	token, _, err := uc.Prepare(context.Background(), validForm(), actor)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	if _, _, err := uc.Confirm(context.Background(), actor, token, true); !errors.Is(err, boundaryErr) {
		t.Fatalf("expected boundary error, got %v", err)
	}

	// The same confirm can be retried; no partial order was committed.
	if _, created, err := uc.Confirm(context.Background(), actor, token, true); err != nil || !created {
		t.Fatalf("expected retry to succeed, got created=%v err=%v", created, err)
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("(55) 1234-5678 ext9"); got != "55123456789" {
		t.Fatalf("expected 55123456789, got %q", got)
	}
	if got := DigitsOnly("abc"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
