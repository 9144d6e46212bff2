package usecase

import (
	"unicode/utf8"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
)

// Intake validation messages, surfaced verbatim to the doctor.
const (
	MsgPatientName    = "Pon el nombre del paciente."
	MsgReferredDoctor = "Pon el nombre del médico (obligatorio)."
	MsgPatientPhone   = "El teléfono del paciente debe tener al menos 8 dígitos."
	MsgNoStudy        = "Selecciona al menos un estudio."
)

// ValidateOrder runs the ordered pre-submission checks; the first failure
// wins and no later rule is evaluated. The payload is never mutated.
// Minimum lengths count runes, not bytes, so accented names measure right.
func ValidateOrder(o *model.Order) error {
	if utf8.RuneCountInString(o.Patient.Name) < 2 {
		return domainErrors.NewValidation(MsgPatientName)
	}
	if utf8.RuneCountInString(o.Referred.Name) < 2 {
		return domainErrors.NewValidation(MsgReferredDoctor)
	}
	if o.Patient.Phone != "" && len(o.Patient.Phone) < 8 {
		return domainErrors.NewValidation(MsgPatientPhone)
	}
	if o.Selection.Active == "" {
		return domainErrors.NewValidation(MsgNoStudy)
	}
	return nil
}
